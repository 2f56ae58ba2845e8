package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

// Form field names shared with the UI
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldRole        = "role"
	FieldPassword    = "password"
	FieldPhoneNumber = "phoneNumber"
	FieldAddress     = "address"
	FieldIsActive    = "isActive"

	FieldTitle    = "title"
	FieldContent  = "content"
	FieldCategory = "category"
	FieldImageURL = "imageUrl"

	// FieldGeneral holds server messages that name no field
	FieldGeneral = "general"

	TitleMaxLength = 200
)

func toMessages(errs validation.Errors) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		if err == nil {
			continue
		}
		out[field] = err.Error()
	}
	return out
}

// ValidateUserForm checks every user field independently and returns one
// message per failing field. An empty map means the form may be submitted.
// Password is only checked when creating.
func ValidateUserForm(form domain.FormState, isEdit bool) map[string]string {
	errs := validation.Errors{
		FieldName: validation.Validate(form.Get(FieldName),
			validation.Required.Error("Name is required"),
		),
		FieldEmail: validation.Validate(form.Get(FieldEmail),
			append([]validation.Rule{validation.Required.Error("Email is required")}, Email...)...,
		),
		FieldRole: validation.Validate(form.Get(FieldRole),
			validation.Required.Error("Role is required"),
			Role,
		),
		FieldPhoneNumber: validation.Validate(form.Get(FieldPhoneNumber),
			Phone,
		),
	}

	if !isEdit {
		errs[FieldPassword] = validation.Validate(form.Raw(FieldPassword),
			validation.Required.Error("Password is required"),
			Password(PasswordMinLength),
		)
	}

	return toMessages(errs)
}

// ValidatePostForm checks the blog post editor fields.
func ValidatePostForm(form domain.FormState) map[string]string {
	errs := validation.Errors{
		FieldTitle: validation.Validate(form.Get(FieldTitle),
			validation.Required.Error("Title is required"),
			validation.RuneLength(0, TitleMaxLength).Error(fmt.Sprintf("Title must be at most %d characters", TitleMaxLength)),
		),
		FieldContent: validation.Validate(form.Get(FieldContent),
			validation.Required.Error("Content is required"),
		),
		FieldCategory: validation.Validate(form.Get(FieldCategory),
			validation.Required.Error("Category is required"),
			Category,
		),
		FieldImageURL: validation.Validate(form.Get(FieldImageURL),
			ImageURL,
		),
	}
	return toMessages(errs)
}

// MergeServerErrors folds the field messages of a rejected request into the
// form's error map. Messages without a field land under FieldGeneral.
func MergeServerErrors(errs map[string]string, err error) map[string]string {
	if errs == nil {
		errs = map[string]string{}
	}

	var serverErr *domain.ServerError
	if !errors.As(err, &serverErr) {
		if err != nil {
			errs[FieldGeneral] = err.Error()
		}
		return errs
	}

	for field, msg := range serverErr.FieldErrors {
		errs[normalizeField(field)] = msg
	}
	if len(serverErr.FieldErrors) == 0 {
		msg := serverErr.Message
		if msg == "" {
			msg = "The server rejected the request"
		}
		errs[FieldGeneral] = msg
	}
	return errs
}

// normalizeField maps server names like "PhoneNumber" to "phoneNumber".
func normalizeField(field string) string {
	field = strings.TrimSpace(field)
	if field == "" {
		return FieldGeneral
	}
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// UserPayloadFromForm builds the request body of a validated user form.
func UserPayloadFromForm(form domain.FormState, isEdit bool) domain.UserPayload {
	role, _ := domain.ParseRole(form.Get(FieldRole))
	active := true
	if v := form.Get(FieldIsActive); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			active = b
		}
	}

	payload := domain.UserPayload{
		Name:        form.Get(FieldName),
		Email:       form.Get(FieldEmail),
		PhoneNumber: form.Get(FieldPhoneNumber),
		Address:     form.Get(FieldAddress),
		Role:        role,
		IsActive:    active,
	}
	if !isEdit {
		payload.Password = form.Raw(FieldPassword)
	}
	return payload
}

// UserEditPayload overlays the fields present in an edit form on the
// current user. isActive is only changed when the form sets it explicitly.
func UserEditPayload(current domain.User, form domain.FormState) domain.UserPayload {
	payload := domain.PayloadOf(current)
	if _, ok := form.Fields[FieldName]; ok {
		payload.Name = form.Get(FieldName)
	}
	if _, ok := form.Fields[FieldEmail]; ok {
		payload.Email = form.Get(FieldEmail)
	}
	if role, ok := domain.ParseRole(form.Get(FieldRole)); ok {
		payload.Role = role
	}
	if _, ok := form.Fields[FieldPhoneNumber]; ok {
		payload.PhoneNumber = form.Get(FieldPhoneNumber)
	}
	if _, ok := form.Fields[FieldAddress]; ok {
		payload.Address = form.Get(FieldAddress)
	}
	if b, err := strconv.ParseBool(form.Get(FieldIsActive)); err == nil {
		payload.IsActive = b
	}
	return payload
}

// PostPayloadFromForm builds the request body of a validated post form.
func PostPayloadFromForm(form domain.FormState) domain.PostPayload {
	id, _ := strconv.Atoi(form.Get(FieldCategory))
	return domain.PostPayload{
		Title:    form.Get(FieldTitle),
		Content:  form.Get(FieldContent),
		ImageURL: form.Get(FieldImageURL),
		Category: domain.Category(id),
	}
}
