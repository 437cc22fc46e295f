package layout

import (
	"errors"
	"testing"
)

func TestTokenize_Skeleton(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"ANSIC", "Mon Jan _2 15:04:05 2006", "<Mon> <Jan> <_2> <15>:<04>:<05> <2006>"},
		{"UnixDate", "Mon Jan _2 15:04:05 MST 2006", "<Mon> <Jan> <_2> <15>:<04>:<05> <MST> <2006>"},
		{"RubyDate", "Mon Jan 02 15:04:05 -0700 2006", "<Mon> <Jan> <02> <15>:<04>:<05> <-0700> <2006>"},
		{"RFC850", "Monday, 02-Jan-06 15:04:05 MST", "<Monday>, <02>-<Jan>-<06> <15>:<04>:<05> <MST>"},
		{"RFC3339Nano", "2006-01-02T15:04:05.999999999Z07:00", "<2006>-<01>-<02>T<15>:<04>:<05><.999999999><Z07:00>"},
		{"Kitchen", "3:04PM", "<3>:<04><PM>"},
		{"StampMilli", "Jan _2 15:04:05.000", "<Jan> <_2> <15>:<04>:<05><.000>"},
		{"comma fraction", "2006-01-02 15:04:05,000", "<2006>-<01>-<02> <15>:<04>:<05><,000>"},
		{"hour offset", "2006-01-02 15:04:05-07", "<2006>-<01>-<02> <15>:<04>:<05><-07>"},
		{"dotted date", "2006.01.02.15.04.05.0", "<2006>.<01>.<02>.<15>.<04>.<05><.0>"},
		{"dotted date two zeros", "2006.01.02.15.04.05.00", "<2006>.<01>.<02>.<15>.<04>.<05><.00>"},
		{"Janet", "Hi Janet, the Month is January: Jan _2 15:04:05 2006",
			"Hi Janet, the Month is <January>: <Jan> <_2> <15>:<04>:<05> <2006>"},
		{"underscore year", "_2006", "_<2006>"},
		{"lowercase meridiem", "3pm", "<3><pm>"},
		{"ISO seconds offset", "15:04:05Z07:00:00", "<15>:<04>:<05><Z07:00:00>"},
		{"no fields", "hello, world", "hello, world"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.layout)
			if err != nil {
				t.Fatalf("Tokenize(%q) error = %v", tt.layout, err)
			}
			if got := Skeleton(tokens); got != tt.want {
				t.Errorf("Skeleton() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	for _, name := range Names() {
		l := Named[name]
		first, err := Tokenize(l)
		if err != nil {
			t.Fatalf("Tokenize(%s) error = %v", name, err)
		}
		second := MustTokenize(l)
		if len(first) != len(second) {
			t.Fatalf("%s: token count %d != %d", name, len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("%s: token %d differs: %#v vs %#v", name, i, first[i], second[i])
			}
		}
	}
}

func TestTokenize_FieldKinds(t *testing.T) {
	tokens := MustTokenize("Mon Jan _2 15:04:05.000 -07:00 MST 2006 3PM")

	var kinds []Kind
	for _, tok := range tokens {
		if f, ok := tok.(Field); ok {
			kinds = append(kinds, f.Kind)
		}
	}
	want := []Kind{
		KindWeekday, KindMonth, KindDay, KindHour, KindMinute, KindSecond,
		KindFraction, KindZoneOffset, KindZoneAbbrev, KindYear, KindHour, KindMeridiem,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d fields %v, want %d", len(kinds), kinds, len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("field %d kind = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestTokenize_FieldConstraints(t *testing.T) {
	tests := []struct {
		layout string
		want   Field
	}{
		{"2006", Field{Kind: KindYear, Ref: "2006", MinDigits: 4, MaxDigits: 4}},
		{"06", Field{Kind: KindYear, Ref: "06", MinDigits: 2, MaxDigits: 2}},
		{"_2", Field{Kind: KindDay, Ref: "_2", MinDigits: 1, MaxDigits: 2, SpacePad: true}},
		{"3", Field{Kind: KindHour, Ref: "3", Clock12: true, MinDigits: 1, MaxDigits: 2}},
		{"January", Field{Kind: KindMonth, Ref: "January", Form: FormLongName}},
		{".000", Field{Kind: KindFraction, Ref: ".000", Fraction: FractionFixed, Sep: '.', Digits: 3}},
		{",99", Field{Kind: KindFraction, Ref: ",99", Fraction: FractionVariable, Sep: ',', Digits: 2}},
		{"Z0700", Field{Kind: KindZoneOffset, Ref: "Z0700", Zone: ZoneHHMM, ISO: true}},
		{"-07:00:00", Field{Kind: KindZoneOffset, Ref: "-07:00:00", Zone: ZoneColonSeconds}},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			tokens := MustTokenize(tt.layout)
			if len(tokens) != 1 {
				t.Fatalf("got %d tokens, want 1: %v", len(tokens), tokens)
			}
			got, ok := tokens[0].(Field)
			if !ok {
				t.Fatalf("token is %T, want Field", tokens[0])
			}
			if got != tt.want {
				t.Errorf("field = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTokenize_FoldedAbbreviations(t *testing.T) {
	tokens := MustTokenize("15:04 UTC T GMTx")

	var folded []string
	for _, tok := range tokens {
		if l, ok := tok.(Literal); ok && l.Fold {
			folded = append(folded, l.Text)
		}
	}
	if len(folded) != 1 || folded[0] != "UTC" {
		t.Errorf("folded literals = %v, want [UTC]", folded)
	}
	if got := Skeleton(tokens); got != "<15>:<04> UTC T GMTx" {
		t.Errorf("Skeleton() = %q", got)
	}
}

func TestTokenize_FractionTooLong(t *testing.T) {
	_, err := Tokenize("15:04:05.0000000000")
	if err == nil {
		t.Fatal("Tokenize() expected error for 10-digit fraction")
	}
	var lerr *Error
	if !errors.As(err, &lerr) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if lerr.Pos != 8 {
		t.Errorf("Pos = %d, want 8", lerr.Pos)
	}
}

func TestMustTokenize_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustTokenize() did not panic")
		}
	}()
	MustTokenize(".9999999999")
}

func TestField_Describe(t *testing.T) {
	tests := []struct {
		layout string
		want   string
	}{
		{"Jan", "month(short)"},
		{"Monday", "weekday(long)"},
		{"15", "hour(24h,1-2)"},
		{"03", "hour(12h,2-2)"},
		{".000", "fraction(fixed,3)"},
		{".999", "fraction(variable,3)"},
		{"_2", "day(1-2,space)"},
		{"04", "minute(2-2)"},
		{"-0700", "zone-offset(-0700)"},
		{"Z07:00", "zone-offset(iso,Z07:00)"},
		{"MST", "zone-abbrev"},
	}
	for _, tt := range tests {
		f := MustTokenize(tt.layout)[0].(Field)
		if got := f.Describe(); got != tt.want {
			t.Errorf("Describe(%q) = %q, want %q", tt.layout, got, tt.want)
		}
	}
}
