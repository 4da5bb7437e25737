package rules

import "fmt"

// RequiredMessage is the default message for a required field left empty.
func RequiredMessage(field string) string {
	return fmt.Sprintf("%s is required", field)
}

// DefaultMessage builds the message reported when rule name fails for field.
func DefaultMessage(name, field string, criteria any) string {
	c := toString(criteria)
	switch name {
	case "minValue":
		return fmt.Sprintf("%s must be at least %s", field, c)
	case "maxValue":
		return fmt.Sprintf("%s must be at most %s", field, c)
	case "isDivisibleBy":
		return fmt.Sprintf("%s must be divisible by %s", field, c)
	case "isInt":
		return fmt.Sprintf("%s must be a whole number", field)
	case "isFloat", "isDecimal":
		return fmt.Sprintf("%s must be a decimal number", field)
	case "isNumeric":
		return fmt.Sprintf("%s must contain only digits", field)
	case "minLength":
		return fmt.Sprintf("%s must be at least %s characters", field, c)
	case "maxLength":
		return fmt.Sprintf("%s must be at most %s characters", field, c)
	case "isLength":
		return fmt.Sprintf("%s must be exactly %s characters", field, c)
	case "isUppercase":
		return fmt.Sprintf("%s must be uppercase", field)
	case "isLowercase":
		return fmt.Sprintf("%s must be lowercase", field)
	case "isAlpha":
		return fmt.Sprintf("%s must contain only letters", field)
	case "isAlphanumeric":
		return fmt.Sprintf("%s must contain only letters and numbers", field)
	case "matches":
		return fmt.Sprintf("%s is not in the expected format", field)
	case "contains":
		return fmt.Sprintf("%s must contain %q", field, c)
	case "equals":
		return fmt.Sprintf("%s must equal %q", field, c)
	case "isEmail":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "isURL":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "isCreditCard":
		return fmt.Sprintf("%s must be a valid credit card number", field)
	case "isHexColor":
		return fmt.Sprintf("%s must be a valid hex color", field)
	case "isIP":
		if v, ok := toInt(criteria); ok && (v == 4 || v == 6) {
			return fmt.Sprintf("%s must be a valid IPv%d address", field, v)
		}
		return fmt.Sprintf("%s must be a valid IP address", field)
	case "isPort":
		return fmt.Sprintf("%s must be a valid port number", field)
	case "eqTarget":
		return fmt.Sprintf("%s must match %s", field, c)
	case "neqTarget":
		return fmt.Sprintf("%s must not match %s", field, c)
	case "gtTarget":
		return fmt.Sprintf("%s must be greater than %s", field, c)
	case "gteTarget":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, c)
	case "ltTarget":
		return fmt.Sprintf("%s must be less than %s", field, c)
	case "lteTarget":
		return fmt.Sprintf("%s must be less than or equal to %s", field, c)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
