package layout

// Name tables, in calendar order. Parsers report the table spelling.
var (
	ShortMonthNames = []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
	LongMonthNames = []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	ShortDayNames = []string{
		"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat",
	}
	LongDayNames = []string{
		"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
	}
)

// MaxFractionDigits is the nanosecond resolution limit.
const MaxFractionDigits = 9

// pattern pairs a reference substring with the field it compiles to.
// reject, when set, vetoes the match based on the layout text that
// follows the reference.
type pattern struct {
	ref    string
	reject func(rest string) bool
	field  Field
}

// patterns is consulted in order at every layout position; the first
// match wins. An entry must come before any entry whose ref is a prefix
// of its own. Never mutated after init.
var patterns = []pattern{
	{ref: "January", field: Field{Kind: KindMonth, Form: FormLongName}},
	{ref: "Monday", field: Field{Kind: KindWeekday, Form: FormLongName}},
	{ref: "Jan", reject: startsWithLower, field: Field{Kind: KindMonth, Form: FormShortName}},
	{ref: "Mon", reject: startsWithLower, field: Field{Kind: KindWeekday, Form: FormShortName}},
	{ref: "MST", field: Field{Kind: KindZoneAbbrev}},

	{ref: "Z07:00:00", field: Field{Kind: KindZoneOffset, Zone: ZoneColonSeconds, ISO: true}},
	{ref: "-07:00:00", field: Field{Kind: KindZoneOffset, Zone: ZoneColonSeconds}},
	{ref: "Z070000", field: Field{Kind: KindZoneOffset, Zone: ZoneHHMMSS, ISO: true}},
	{ref: "-070000", field: Field{Kind: KindZoneOffset, Zone: ZoneHHMMSS}},
	{ref: "Z07:00", field: Field{Kind: KindZoneOffset, Zone: ZoneColon, ISO: true}},
	{ref: "-07:00", field: Field{Kind: KindZoneOffset, Zone: ZoneColon}},
	{ref: "Z0700", field: Field{Kind: KindZoneOffset, Zone: ZoneHHMM, ISO: true}},
	{ref: "-0700", field: Field{Kind: KindZoneOffset, Zone: ZoneHHMM}},
	{ref: "Z07", field: Field{Kind: KindZoneOffset, Zone: ZoneHours, ISO: true}},
	{ref: "-07", field: Field{Kind: KindZoneOffset, Zone: ZoneHours}},

	{ref: "2006", field: Field{Kind: KindYear, MinDigits: 4, MaxDigits: 4}},
	// "_2006" is a literal underscore followed by the year.
	{ref: "_2", reject: startsWithYear, field: Field{Kind: KindDay, MinDigits: 1, MaxDigits: 2, SpacePad: true}},
	{ref: "01", field: Field{Kind: KindMonth, Form: FormNumeric, MinDigits: 2, MaxDigits: 2}},
	{ref: "02", field: Field{Kind: KindDay, MinDigits: 2, MaxDigits: 2}},
	{ref: "03", field: Field{Kind: KindHour, Clock12: true, MinDigits: 2, MaxDigits: 2}},
	{ref: "04", field: Field{Kind: KindMinute, MinDigits: 2, MaxDigits: 2}},
	{ref: "05", field: Field{Kind: KindSecond, MinDigits: 2, MaxDigits: 2}},
	{ref: "06", field: Field{Kind: KindYear, MinDigits: 2, MaxDigits: 2}},
	{ref: "15", field: Field{Kind: KindHour, MinDigits: 1, MaxDigits: 2}},
	{ref: "1", field: Field{Kind: KindMonth, Form: FormNumeric, MinDigits: 1, MaxDigits: 2}},
	{ref: "2", field: Field{Kind: KindDay, MinDigits: 1, MaxDigits: 2}},
	{ref: "3", field: Field{Kind: KindHour, Clock12: true, MinDigits: 1, MaxDigits: 2}},
	{ref: "4", field: Field{Kind: KindMinute, MinDigits: 1, MaxDigits: 2}},
	{ref: "5", field: Field{Kind: KindSecond, MinDigits: 1, MaxDigits: 2}},

	{ref: "PM", field: Field{Kind: KindMeridiem}},
	{ref: "pm", field: Field{Kind: KindMeridiem}},
}

func init() {
	for i := range patterns {
		patterns[i].field.Ref = patterns[i].ref
	}
}

// startsWithLower reports whether s begins with a lower-case ASCII
// letter. It keeps "Mon" from matching inside "Month" and "Jan" inside
// "Janet".
func startsWithLower(s string) bool {
	return len(s) > 0 && 'a' <= s[0] && s[0] <= 'z'
}

func startsWithYear(s string) bool {
	return len(s) >= 3 && s[:3] == "006"
}

func isDigit(s string, i int) bool {
	return i < len(s) && '0' <= s[i] && s[i] <= '9'
}

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }

func isLetter(c byte) bool { return isUpper(c) || ('a' <= c && c <= 'z') }
