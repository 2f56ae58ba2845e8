package validator

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

func keys(m map[string]string) string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}

func TestValidateUserForm(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		isEdit bool
		want   string
	}{
		{
			name:   "Empty create form reports four fields",
			fields: map[string]string{"name": "", "email": "", "role": ""},
			want:   "email,name,password,role",
		},
		{
			name:   "Valid create form",
			fields: map[string]string{"name": "A", "email": "a@b.com", "role": "admin", "password": "123456"},
			want:   "",
		},
		{
			name:   "Blank name after trim",
			fields: map[string]string{"name": "   ", "email": "a@b.com", "role": "staff", "password": "123456"},
			want:   "name",
		},
		{
			name:   "Short password",
			fields: map[string]string{"name": "A", "email": "a@b.com", "role": "staff", "password": "12345"},
			want:   "password",
		},
		{
			name:   "Edit skips password",
			fields: map[string]string{"name": "A", "email": "a@b.com", "role": "customer"},
			isEdit: true,
			want:   "",
		},
		{
			name:   "Bad email and role and phone together",
			fields: map[string]string{"name": "A", "email": "a@b", "role": "root", "phoneNumber": "call me"},
			isEdit: true,
			want:   "email,phoneNumber,role",
		},
		{
			name:   "Phone with allowed punctuation",
			fields: map[string]string{"name": "A", "email": "a@b.com", "role": "Consultant", "phoneNumber": "+84 (90) 123-4567"},
			isEdit: true,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateUserForm(domain.NewFormState(tt.fields), tt.isEdit)
			if k := keys(got); k != tt.want {
				t.Errorf("ValidateUserForm() fields = %q, want %q (%v)", k, tt.want, got)
			}
		})
	}
}

func TestValidateUserFormMessages(t *testing.T) {
	got := ValidateUserForm(domain.NewFormState(map[string]string{"password": "abc"}), false)
	if got[FieldName] != "Name is required" {
		t.Errorf("name message = %q", got[FieldName])
	}
	if !strings.Contains(got[FieldPassword], "at least 6") {
		t.Errorf("password message = %q", got[FieldPassword])
	}
}

func TestValidatePostForm(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{"Empty", map[string]string{}, "category,content,title"},
		{"Valid", map[string]string{"title": "T", "content": "C", "category": "0"}, ""},
		{"Unassigned category", map[string]string{"title": "T", "content": "C", "category": "4"}, "category"},
		{"Non numeric category", map[string]string{"title": "T", "content": "C", "category": "health"}, "category"},
		{"Relative image", map[string]string{"title": "T", "content": "C", "category": "5", "imageUrl": "/img/a.png"}, "imageUrl"},
		{"Absolute image", map[string]string{"title": "T", "content": "C", "category": "5", "imageUrl": "https://cdn.example.com/a.png"}, ""},
		{"Long title", map[string]string{"title": strings.Repeat("x", TitleMaxLength+1), "content": "C", "category": "1"}, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePostForm(domain.NewFormState(tt.fields))
			if k := keys(got); k != tt.want {
				t.Errorf("ValidatePostForm() fields = %q, want %q (%v)", k, tt.want, got)
			}
		})
	}
}

func TestMergeServerErrors(t *testing.T) {
	serverErr := &domain.ServerError{
		Status:      400,
		Message:     "One or more validation errors occurred.",
		FieldErrors: map[string]string{"Email": "Email already in use"},
	}
	got := MergeServerErrors(map[string]string{"name": "Name is required"}, serverErr)
	if got["email"] != "Email already in use" || got["name"] != "Name is required" {
		t.Errorf("unexpected merge result: %v", got)
	}
	if _, ok := got[FieldGeneral]; ok {
		t.Errorf("general message should not be set when fields are present")
	}

	general := MergeServerErrors(nil, &domain.ServerError{Status: 500, Message: "boom"})
	if general[FieldGeneral] != "boom" {
		t.Errorf("general = %q", general[FieldGeneral])
	}

	network := MergeServerErrors(nil, &domain.NetworkError{Op: "create user", Err: errors.New("refused")})
	if network[FieldGeneral] == "" {
		t.Errorf("network failure should surface as a general message")
	}
}

func TestUserPayloadFromForm(t *testing.T) {
	form := domain.NewFormState(map[string]string{
		"name": " Lan ", "email": "lan@x.com", "role": "Staff", "password": "secret1", "isActive": "false",
	})

	created := UserPayloadFromForm(form, false)
	if created.Name != "Lan" || created.Role != domain.RoleStaff || created.Password != "secret1" || created.IsActive {
		t.Errorf("unexpected create payload: %+v", created)
	}

	edited := UserPayloadFromForm(form, true)
	if edited.Password != "" {
		t.Errorf("edit payload must not carry a password")
	}
}

func TestUserEditPayload(t *testing.T) {
	current := domain.User{
		ID: "u1", Name: "Lan", Email: "lan@x.com", PhoneNumber: "0901234567",
		Address: "Hue", Role: domain.RoleStaff, IsActive: false,
	}

	got := UserEditPayload(current, domain.NewFormState(map[string]string{
		"name": " Lan Anh ", "email": "lan@x.com", "role": "Consultant",
	}))
	if got.Name != "Lan Anh" || got.Role != domain.RoleConsultant {
		t.Errorf("form fields not applied: %+v", got)
	}
	if got.IsActive {
		t.Error("absent isActive must keep the current value")
	}
	if got.PhoneNumber != "0901234567" || got.Address != "Hue" {
		t.Errorf("absent fields must keep current values: %+v", got)
	}

	cleared := UserEditPayload(current, domain.NewFormState(map[string]string{"phoneNumber": "", "isActive": "true"}))
	if cleared.PhoneNumber != "" || !cleared.IsActive || cleared.Name != "Lan" {
		t.Errorf("unexpected payload: %+v", cleared)
	}
}
