package entity

import (
	"fmt"
	"math"
	"strings"
)

// Medication is one prescription line item. Lines exist in memory while a
// consultation is being composed and are then serialized into the
// consultation's medication payload; they are never edited afterwards.
//
// ID is a time-based ordering key, unique within one composition session
// only. Dosage is a derived display string, not independently entered.
type Medication struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Unit    string `json:"unit,omitempty"`
	Dosage  string `json:"dosage"`
	Days    string `json:"days"`
	Qty     string `json:"qty"`
	Info    string `json:"info"`
	Remarks string `json:"remarks,omitempty"`
}

// MedicationInput is a candidate line as entered on the consultation form.
// The three dose slots are free-form numerics; a blank slot counts as 0.
type MedicationInput struct {
	Name      string
	Unit      string
	Morning   string
	Afternoon string
	Night     string
	Days      string
	Qty       string
	Info      string
	Remarks   string
}

// FormatDosage builds the display dosage from the three dose slots plus an
// optional unit annotation: "1 - 0 - 1 (mg)", or "1 - 0 - 1" when the unit
// is blank.
func FormatDosage(morning, afternoon, night, unit string) string {
	dosage := fmt.Sprintf("%s - %s - %s", doseSlot(morning), doseSlot(afternoon), doseSlot(night))
	if unit = strings.TrimSpace(unit); unit != "" {
		dosage += fmt.Sprintf(" (%s)", unit)
	}
	return dosage
}

func doseSlot(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "0"
	}
	return v
}

// SuggestedQuantity proposes a dispense quantity of round(daily total × days).
// It is a form convenience the user may override; stored lines are never
// checked against it. ok is false when either the daily total or the number
// of days is not positive.
func SuggestedQuantity(morning, afternoon, night, days float64) (qty int, ok bool) {
	total := morning + afternoon + night
	if total <= 0 || days <= 0 {
		return 0, false
	}
	return int(math.Round(total * days)), true
}
