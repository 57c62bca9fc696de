package utils

import (
	"reflect"
	"strings"
)

// NormalizeDTO trims string fields and rounds float64 fields on a
// pointer-to-struct DTO. Other field kinds are left untouched.
func NormalizeDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		switch f.Kind() {
		case reflect.String:
			if f.CanSet() {
				f.SetString(strings.TrimSpace(f.String()))
			}
		case reflect.Float64:
			if f.CanSet() {
				f.SetFloat(Round2(f.Float()))
			}
		}
	}
}
