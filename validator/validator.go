package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type Validator interface {
	Engine() any
	ValidateStruct(obj any) error
	GetTranslator(locale string) (ut.Translator, error)
}

var (
	defaultValidator Validator
	vOnce            sync.Once
)

func DefaultValidator() Validator {
	vOnce.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

func RegisterValidatorWithGin() {
	binding.Validator = DefaultValidator().(*validatorImpl)
}

var _ Validator = (*validatorImpl)(nil)
var _ binding.StructValidator = (*validatorImpl)(nil)

func New() Validator {
	v := new(validatorImpl)
	v.validate = validator.New()
	v.validate.SetTagName("binding")
	v.locale = DefaultLocale

	v.initTranslator()

	// Field names in messages follow the json names clients send.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	for _, validation := range defaultRegistrations {
		if err := v.validate.RegisterValidation(validation.Tag, validation.Func); err != nil {
			panic(fmt.Sprintf("register validation %s: %v", validation.Tag, err))
		}
	}

	v.registerCustomTranslations()
	return v
}

type validatorImpl struct {
	validate   *validator.Validate
	uni        *ut.UniversalTranslator
	translator ut.Translator
	locale     string
}

// ValidateStruct validates structs, pointers to structs and slices of them.
// Other kinds pass through.
func (v *validatorImpl) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}

	value := reflect.ValueOf(obj)
	switch kindOfData(obj) {
	case reflect.Struct:
		return v.validate.Struct(obj)
	case reflect.Slice, reflect.Array:
		if value.Kind() == reflect.Ptr {
			value = value.Elem()
		}
		for i := 0; i < value.Len(); i++ {
			if err := v.ValidateStruct(value.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func (v *validatorImpl) Engine() any {
	return v.validate
}

func (v *validatorImpl) GetTranslator(locale string) (ut.Translator, error) {
	trans, found := v.uni.GetTranslator(locale)
	if !found {
		return nil, fmt.Errorf("translator for locale '%s' not found", locale)
	}
	return trans, nil
}

func kindOfData(data any) reflect.Kind {
	value := reflect.ValueOf(data)
	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return reflect.Invalid
		}
		return value.Elem().Kind()
	}
	return value.Kind()
}
