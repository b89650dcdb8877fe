package dto

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phonePattern 允许数字、空格、括号、连字符、点和前导加号
var phonePattern = regexp.MustCompile(`^\+?[0-9().\- ]{7,15}$`)

// RegisterValidators 注册目录模块的自定义校验规则
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("phone", validatePhone)
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// ValidationMessage 将 binding 错误转换为单行可读信息
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
