package command

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

var knownTypes = map[Type]struct{}{
	TypeCreateTransaction: {}, TypeUpdateTransaction: {}, TypeDeleteTransaction: {},
	TypeCreateBankTransaction: {}, TypeUpdateBankTransaction: {}, TypeDeleteBankTransaction: {},
	TypeCreateSwap: {}, TypeUpdateSwap: {}, TypeDeleteSwap: {},
	TypeCreateStockMovement: {}, TypeUpdateStockMovement: {}, TypeDeleteStockMovement: {},
	TypeCreateAccount: {}, TypeSetDefaultAccount: {}, TypeCreateBankAccount: {},
	TypeSyncSequences: {},
}

// Known reports whether t names a supported operation
func (t Type) Known() bool {
	_, ok := knownTypes[t]
	return ok
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so errors match what the client sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("command_type", func(fl validator.FieldLevel) bool {
		return Type(fl.Field().String()).Known()
	})
	return v
}

// Validate checks the validate tags of s. The first violation is returned as a
// shared.ValidationError so it classifies as an invalid argument.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return shared.Invalid("payload", "%v", err)
	}
	fe := verrs[0]
	return shared.Invalid(fieldPath(fe), "%s", describe(fe))
}

// fieldPath drops the root struct name from the namespace, e.g. SwapPayload.from_account_id.
// Instantiated generic type names carry package paths with dots of their own.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "]."); i >= 0 {
		return ns[i+2:]
	}
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	case "command_type":
		return "unknown command type"
	case "gt":
		return "must be greater than " + fe.Param()
	case "nefield":
		return "must differ from " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
