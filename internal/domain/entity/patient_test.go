package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsClosedPartition(t *testing.T) {
	open := Patient{Status: PatientStatusOpen}
	closed := Patient{Status: PatientStatusClosed}
	blank := Patient{}

	assert.False(t, open.IsClosed())
	assert.True(t, closed.IsClosed())
	// Records with no status land in the open partition.
	assert.False(t, blank.IsClosed())
}

func TestCloseAndReopen(t *testing.T) {
	p := Patient{Status: PatientStatusOpen}

	p.Close()
	assert.True(t, p.IsClosed())

	p.Reopen()
	assert.False(t, p.IsClosed())
	assert.Equal(t, PatientStatusOpen, p.Status)
}

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	age, err := AgeFromDOB("1990-03-15", now)
	require.NoError(t, err)
	assert.Equal(t, 36, age)

	_, err = AgeFromDOB("not-a-date", now)
	assert.Error(t, err)
}

func TestDOBFromAge(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "1986-01-01", DOBFromAge(40, now))
}
