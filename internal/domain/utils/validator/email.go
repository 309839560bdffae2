package validator

import (
	"net/mail"
	"strings"

	"github.com/spf13/viper"
)

// Email accepts a single address. When service.smtp.allowed-domains is set,
// the address must end with one of them.
func Email(email string, _ map[string]interface{}) bool {
	return emailFormat(email) && emailDomain(email)
}

func emailFormat(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == strings.TrimSpace(email)
}

func emailDomain(email string) bool {
	validDomains := viper.GetStringSlice("service.smtp.allowed-domains")
	if len(validDomains) == 0 {
		return true
	}

	for _, domain := range validDomains {
		if strings.HasSuffix(email, domain) {
			return true
		}
	}
	return false
}
