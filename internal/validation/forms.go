package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/mi-raf/rule-look/internal/models"
)

const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "passwordConfirm"
	FieldName            = "name"
	FieldSchool          = "school"

	MinNameLen = 2
)

// Reference is the subset of the catalog the checks need.
type Reference interface {
	HasSchool(name string) bool
	HasCategory(c models.Category) bool
}

type (
	LoginForm struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"rememberMe"`
	}

	Terms struct {
		Service   bool `json:"service"`
		Privacy   bool `json:"privacy"`
		Marketing bool `json:"marketing"`
	}

	SignupForm struct {
		Email           string `json:"email"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
		Name            string `json:"name"`
		School          string `json:"school"`
		Terms           Terms  `json:"terms"`
	}

	ProfileForm struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
)

func (t Terms) All() bool {
	return t.Service && t.Privacy && t.Marketing
}

// ToggleAll sets every term to the negation of the current "all" state.
func (t *Terms) ToggleAll() {
	v := !t.All()
	t.Service, t.Privacy, t.Marketing = v, v, v
}

func (t *Terms) Toggle(term string) {
	switch term {
	case "service":
		t.Service = !t.Service
	case "privacy":
		t.Privacy = !t.Privacy
	case "marketing":
		t.Marketing = !t.Marketing
	}
}

func ValidateLogin(f LoginForm) error {
	if f.Email == "" || f.Password == "" {
		return newError(CodeMissingFields, MsgLoginRequired)
	}
	if !IsEmail(f.Email) {
		return newError(CodeInvalidEmail, MsgEmailFormat)
	}
	return nil
}

// Change sets one field and returns the field-level message for it, empty
// when the value is fine. Empty values never produce a message because the
// user has not typed anything yet.
func (f *SignupForm) Change(field, value string) string {
	switch field {
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldPasswordConfirm:
		f.PasswordConfirm = value
	case FieldName:
		f.Name = value
	case FieldSchool:
		f.School = value
	default:
		return ""
	}
	return f.fieldError(field)
}

func (f *SignupForm) fieldError(field string) string {
	switch field {
	case FieldEmail:
		if f.Email != "" && !IsEmail(f.Email) {
			return MsgFieldEmail
		}
	case FieldPassword:
		if f.Password != "" && utf8.RuneCountInString(f.Password) < MinPasswordLen {
			return MsgFieldPassword
		}
	case FieldPasswordConfirm:
		if f.PasswordConfirm != "" && f.PasswordConfirm != f.Password {
			return MsgFieldPasswordMatch
		}
	case FieldName:
		if f.Name != "" && utf8.RuneCountInString(f.Name) < MinNameLen {
			return MsgFieldName
		}
	}
	return ""
}

// FieldErrors returns the messages of every touched field that fails.
func (f *SignupForm) FieldErrors() map[string]string {
	errs := make(map[string]string)
	for _, field := range []string{FieldEmail, FieldPassword, FieldPasswordConfirm, FieldName} {
		if msg := f.fieldError(field); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

func (f *SignupForm) Strength() int {
	return PasswordStrength(f.Password)
}

func ValidateSignup(f SignupForm, ref Reference) error {
	if f.Email == "" || f.Password == "" || f.Name == "" || f.School == "" {
		return newError(CodeMissingFields, MsgSignupRequired)
	}
	if errs := f.FieldErrors(); len(errs) > 0 {
		e := newError(CodeInvalidFields, MsgCheckInput)
		e.Fields = errs
		return e
	}
	if ref != nil && !ref.HasSchool(f.School) {
		return newError(CodeUnknownSchool, MsgSelectSchool)
	}
	if !f.Terms.Service || !f.Terms.Privacy {
		return newError(CodeTermsRequired, MsgTermsRequired)
	}
	return nil
}

func ValidateProfile(f ProfileForm) error {
	if blank(f.Name) || blank(f.Email) {
		return newError(CodeMissingFields, MsgProfileRequired)
	}
	if !IsEmail(strings.TrimSpace(f.Email)) {
		return newError(CodeInvalidEmail, MsgEmailFormat)
	}
	return nil
}

// ValidateSchoolChange checks a school change request. confirmed carries the
// user's answer to the change prompt.
func ValidateSchoolChange(selected, current string, confirmed bool, ref Reference) error {
	if selected == "" {
		return newError(CodeMissingFields, MsgSelectSchool)
	}
	if ref != nil && !ref.HasSchool(selected) {
		return newError(CodeUnknownSchool, MsgSelectSchool)
	}
	if selected == current {
		return newError(CodeSameSchool, MsgSameSchool)
	}
	if !confirmed {
		return ConfirmationRequired("학교를 \"" + selected + "\"(으)로 변경하시겠습니까?")
	}
	return nil
}

// ValidateDraft requires all four write-post fields to be non-blank. With a
// reference, category and school must also be known values.
func ValidateDraft(d models.Draft, ref Reference) error {
	if blank(string(d.Category)) || blank(d.School) || blank(d.Title) || blank(d.Content) {
		return newError(CodeMissingFields, MsgAllFields)
	}
	if ref == nil {
		return nil
	}
	if !ref.HasCategory(d.Category) {
		return newError(CodeUnknownCategory, MsgAllFields)
	}
	if !ref.HasSchool(d.School) {
		return newError(CodeUnknownSchool, MsgAllFields)
	}
	return nil
}
