// Package phone validates and normalises contact phone numbers.
package phone

import (
	"fmt"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// Normalize parses number in the given default region and returns it in
// E.164 form. Numbers written with a leading + ignore the region.
func Normalize(number, region string) (string, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", fmt.Errorf("phone number is empty")
	}

	p, err := libphonenumber.Parse(number, strings.ToUpper(region))
	if err != nil {
		return "", err
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("phone number is not valid")
	}

	return libphonenumber.Format(p, libphonenumber.E164), nil
}
