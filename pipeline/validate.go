package pipeline

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/lexindia/agent/domain"
)

// Request is the external unary/streaming request shape (§6): free text plus
// optional hints the QueryAnalyzer uses when present.
type Request struct {
	Content              string `validate:"required,min=1,max=5000"`
	Language             string `validate:"omitempty,oneof=en hi"`
	SessionID            string `validate:"omitempty,max=128"`
	Domain               string `validate:"omitempty,legaldomain"`
	AttachedDocument     string `validate:"omitempty,max=200000"`
	AttachedDocumentType string `validate:"omitempty,oneof=judgment statute petition"`
}

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New()
		validatorInst.RegisterValidation("legaldomain", validateDomainTag)
	})
	return validatorInst
}

func validateDomainTag(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return true
	}
	return domainKnown(domain.Domain(v))
}

func domainKnown(d domain.Domain) bool {
	if d == domain.DomainWildcard {
		return true
	}
	for _, known := range domain.AllDomains {
		if known == d {
			return true
		}
	}
	return false
}

// Validate checks r against the request shape; the legaldomain tag rejects
// anything outside domain.AllDomains (plus the wildcard).
func (r Request) Validate() error {
	if err := getValidator().Struct(r); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// LanguageOrDefault resolves the request's requested language, defaulting to
// English when the caller did not specify one.
func (r Request) LanguageOrDefault() domain.Language {
	if r.Language == "" {
		return domain.LanguageEnglish
	}
	return domain.Language(r.Language)
}

// DomainOrWildcard resolves the request's specified domain, defaulting to
// the wildcard (no gate) when the caller did not specify one.
func (r Request) DomainOrWildcard() domain.Domain {
	if r.Domain == "" {
		return domain.DomainWildcard
	}
	return domain.Domain(r.Domain)
}
