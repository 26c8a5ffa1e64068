package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobIsParticipant(t *testing.T) {
	job := &Job{
		EmployerID: "employer-1",
		Applications: []Application{
			{WorkerID: "worker-1"},
			{WorkerID: "worker-2"},
		},
	}

	assert.True(t, job.IsParticipant("employer-1"))
	assert.True(t, job.IsParticipant("worker-1"))
	assert.True(t, job.IsParticipant("worker-2"))

	assert.False(t, job.IsParticipant("stranger"))
	assert.False(t, job.IsParticipant(""))
}

func TestJobIsParticipantNoApplications(t *testing.T) {
	job := &Job{EmployerID: "employer-1"}

	assert.True(t, job.IsParticipant("employer-1"))
	assert.False(t, job.IsParticipant("worker-1"))
}
