package config

import (
	"fmt"
	"net"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/miekg/dns"

	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "ipv4_or_empty":
		return "must be a valid IPv4 address or empty"
	case "domain_name":
		return "must be a valid domain name"
	case "hostport_or_empty":
		return "must be in format 'host:port' or empty"
	case "dns_server":
		return "must be an IP address or ip:port"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // For routers: the router name (e.g., "home")
	FieldPath string // Dot-notation field path (e.g., "general.api_listen_addr", "router.0.login")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

// Is makes errors.Is(err, kerrors.ErrValidation) match validation failures.
func (ve ValidationErrors) Is(target error) bool {
	return target == kerrors.ErrValidation
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	if err := validate.RegisterValidation("ipv4_or_empty", validateIPv4OrEmpty); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("domain_name", validateDomainName); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("hostport_or_empty", validateHostPortOrEmpty); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("dns_server", validateDNSServer); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: IPv4 address or empty
func validateIPv4OrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := utils.ParseIPv4(value)
	return ok && !strings.Contains(value, ":")
}

// Custom validator: DNS domain name such as home.keenetic.pro
func validateDomainName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || value == "." {
		return false
	}
	_, ok := dns.IsDomainName(value)
	return ok
}

// Custom validator: host:port format or empty
func validateHostPortOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, _, err := net.SplitHostPort(value)
	return err == nil
}

// Custom validator: DNS server as ip or ip:port
func validateDNSServer(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if net.ParseIP(value) != nil {
		return true
	}
	host, port, err := net.SplitHostPort(value)
	if err != nil {
		return false
	}
	return net.ParseIP(host) != nil && utils.IsValidPort(port)
}
