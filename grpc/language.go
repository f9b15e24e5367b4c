package grpc

import (
	"fmt"
	"strings"
)

type Language int32

const (
	Language_LANGUAGE_UNSPECIFIED Language = 0
	Language_LANGUAGE_EN_US       Language = 1
	Language_LANGUAGE_KO_KR       Language = 2
	Language_LANGUAGE_JA_JP       Language = 3
	Language_LANGUAGE_PT_BR       Language = 4
)

var Language_name = map[Language]string{
	Language_LANGUAGE_UNSPECIFIED: "LANGUAGE_UNSPECIFIED",
	Language_LANGUAGE_EN_US:       "LANGUAGE_EN_US",
	Language_LANGUAGE_KO_KR:       "LANGUAGE_KO_KR",
	Language_LANGUAGE_JA_JP:       "LANGUAGE_JA_JP",
	Language_LANGUAGE_PT_BR:       "LANGUAGE_PT_BR",
}

func (l Language) String() string {
	if name, ok := Language_name[l]; ok {
		return name
	}
	return fmt.Sprintf("LANGUAGE_%d", int32(l))
}

// ParseLanguage accepts the enum name with or without the LANGUAGE_ prefix,
// e.g. "LANGUAGE_KO_KR", "ko_kr" or "ko-KR".
func ParseLanguage(value string) (Language, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), "-", "_"))
	if !strings.HasPrefix(name, "LANGUAGE_") {
		name = "LANGUAGE_" + name
	}
	for language, languageName := range Language_name {
		if languageName == name {
			return language, nil
		}
	}
	return Language_LANGUAGE_UNSPECIFIED, fmt.Errorf("unknown language %q", value)
}

func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Language) UnmarshalText(text []byte) error {
	language, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = language
	return nil
}
