package validator

// Built-in rule names.
const (
	RuleRequired      = "required"
	RuleEmail         = "email"
	RuleMin           = "min"
	RuleMax           = "max"
	RuleNumeric       = "numeric"
	RuleString        = "string"
	RuleArray         = "array"
	RuleIn            = "in"
	RuleDate          = "date"
	RuleDateFormat    = "date_format"
	RuleURL           = "url"
	RuleRegex         = "regex"
	RuleUnique        = "unique"
	RuleAlpha         = "alpha"
	RuleAlphaNum      = "alpha_num"
	RuleAlphaDash     = "alpha_dash"
	RuleBoolean       = "boolean"
	RuleConfirmed     = "confirmed"
	RuleDateEquals    = "date_equals"
	RuleDateBefore    = "date_before"
	RuleDateAfter     = "date_after"
	RuleDigits        = "digits"
	RuleDigitsBetween = "digits_between"
	RuleFile          = "file"
	RuleImage         = "image"
	RuleMIMETypes     = "mimetypes"
	RuleSize          = "size"
	RuleMinValue      = "min_value"
	RuleMaxValue      = "max_value"
	RuleTimezone      = "timezone"
	RuleUUID          = "uuid"
)

// builtinHandlers is never mutated; DefaultRegistry copies it.
var builtinHandlers = map[string]Handler{
	RuleRequired:      NewHandler(0, checkRequired),
	RuleEmail:         NewHandler(0, checkEmail),
	RuleMin:           NewHandler(1, checkMinLength),
	RuleMax:           NewHandler(1, checkMaxLength),
	RuleNumeric:       NewHandler(0, checkNumeric),
	RuleString:        NewHandler(0, checkString),
	RuleArray:         NewHandler(0, checkArray),
	RuleIn:            NewHandler(0, checkIn),
	RuleDate:          NewHandler(0, checkDate),
	RuleDateFormat:    NewHandler(1, checkDateFormat),
	RuleURL:           NewHandler(0, checkURL),
	RuleRegex:         NewHandler(1, checkRegex),
	RuleUnique:        NewHandler(2, checkUnique),
	RuleAlpha:         NewHandler(0, checkAlpha),
	RuleAlphaNum:      NewHandler(0, checkAlphaNum),
	RuleAlphaDash:     NewHandler(0, checkAlphaDash),
	RuleBoolean:       NewHandler(0, checkBoolean),
	RuleConfirmed:     NewHandler(1, checkConfirmed),
	RuleDateEquals:    NewHandler(2, checkDateEquals),
	RuleDateBefore:    NewHandler(2, checkDateBefore),
	RuleDateAfter:     NewHandler(2, checkDateAfter),
	RuleDigits:        NewHandler(1, checkDigits),
	RuleDigitsBetween: NewHandler(2, checkDigitsBetween),
	RuleFile:          NewHandler(0, checkFile),
	RuleImage:         NewHandler(0, checkImage),
	RuleMIMETypes:     NewHandler(1, checkMIMETypes),
	RuleSize:          NewHandler(1, checkSize),
	RuleMinValue:      NewHandler(1, checkMinValue),
	RuleMaxValue:      NewHandler(1, checkMaxValue),
	RuleTimezone:      NewHandler(0, checkTimezone),
	RuleUUID:          NewHandler(0, checkUUID),
}
