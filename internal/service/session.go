package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go-clinic-workflow/internal/domain/entity"
)

// ErrIncompleteMedication rejects a medication line whose name, days,
// quantity or timing instruction is blank.
var ErrIncompleteMedication = errors.New("medication line is missing required fields")

// consultationSession is the in-progress consultation state for one staff
// user: the selected patient and the medication lines composed so far.
// The medication list is transient by design — it is discarded whenever a
// patient is selected and after a successful submit, and it dies with the
// process.
type consultationSession struct {
	selectedPatientID string
	medications       []entity.Medication
	lastLineID        int64
}

// SessionManager holds one consultation session per logged-in user.
// Sessions are created at login and torn down at logout.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*consultationSession
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*consultationSession),
	}
}

// Begin creates a fresh session for the user, replacing any leftover one.
func (m *SessionManager) Begin(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[username] = &consultationSession{}
}

// End discards the user's session entirely.
func (m *SessionManager) End(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, username)
}

// SelectPatient makes the patient the target of the in-progress
// consultation. Selecting always clears the medication list, so lines
// composed for one patient can never leak into another's consultation.
func (m *SessionManager) SelectPatient(username, patientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.session(username)
	session.selectedPatientID = patientID
	session.medications = nil
}

// SelectedPatient returns the currently selected patient id, if any.
func (m *SessionManager) SelectedPatient(username string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.session(username)
	return session.selectedPatientID, session.selectedPatientID != ""
}

// AddMedication validates and appends a candidate line. Name, days,
// quantity and timing instruction are mandatory after trimming; a line
// missing any of them is rejected and the list is left unchanged.
func (m *SessionManager) AddMedication(username string, input entity.MedicationInput) (entity.Medication, error) {
	name := strings.TrimSpace(input.Name)
	days := strings.TrimSpace(input.Days)
	qty := strings.TrimSpace(input.Qty)
	info := strings.TrimSpace(input.Info)

	if name == "" || days == "" || qty == "" || info == "" {
		return entity.Medication{}, ErrIncompleteMedication
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.session(username)

	line := entity.Medication{
		ID:      session.nextLineID(),
		Name:    name,
		Unit:    strings.TrimSpace(input.Unit),
		Dosage:  entity.FormatDosage(input.Morning, input.Afternoon, input.Night, input.Unit),
		Days:    days,
		Qty:     qty,
		Info:    info,
		Remarks: strings.TrimSpace(input.Remarks),
	}
	session.medications = append(session.medications, line)

	return line, nil
}

// RemoveMedication drops the line with the given id, if present.
func (m *SessionManager) RemoveMedication(username string, lineID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.session(username)

	kept := session.medications[:0]
	for _, line := range session.medications {
		if line.ID != lineID {
			kept = append(kept, line)
		}
	}
	session.medications = kept
}

// Medications returns a copy of the composed lines in insertion order.
func (m *SessionManager) Medications(username string) []entity.Medication {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.session(username)

	lines := make([]entity.Medication, len(session.medications))
	copy(lines, session.medications)
	return lines
}

// ClearConsultation resets selection and medication list after a
// successful submit.
func (m *SessionManager) ClearConsultation(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.session(username)
	session.selectedPatientID = ""
	session.medications = nil
}

// session returns the user's session, creating one lazily so requests
// arriving after a service restart still work without a fresh login.
// Callers must hold m.mu.
func (m *SessionManager) session(username string) *consultationSession {
	session, ok := m.sessions[username]
	if !ok {
		session = &consultationSession{}
		m.sessions[username] = session
	}
	return session
}

// nextLineID returns a millisecond-timestamp ordering key, bumped past the
// previous id when two lines land in the same millisecond.
func (s *consultationSession) nextLineID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastLineID {
		id = s.lastLineID + 1
	}
	s.lastLineID = id
	return id
}
