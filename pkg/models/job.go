package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is stored verbatim in jobs.status.
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusError      JobStatus = "ERROR"
)

// Valid reports whether s is one of the known job statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusError:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is defined out of s.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusError
}

// Sentiment is the coarse three-way classification of a text.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// Valid reports whether s is one of the three known sentiments.
func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNegative || s == SentimentNeutral
}

// Job is one text-analysis request. The client submits text, receives a job_id and
// polls GET /job_status/{job_id} until status is COMPLETED or ERROR.
//
// Sentiment and Keywords stay nil until a run completes.
type Job struct {
	ID           uuid.UUID  `db:"job_id"          json:"job_id"`
	Text         string     `db:"text_to_analyze" json:"text"`
	Status       JobStatus  `db:"status"          json:"status"`
	Sentiment    *Sentiment `db:"sentiment"       json:"sentiment"`
	Keywords     []string   `db:"keywords"        json:"keywords"`
	ErrorMessage *string    `db:"error_message"   json:"error_message,omitempty"`
	CreatedAt    time.Time  `db:"created_at"      json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"      json:"updated_at"`
}

// Clone returns a deep copy so callers never share slices or pointers.
func (j *Job) Clone() *Job {
	c := *j
	if j.Sentiment != nil {
		s := *j.Sentiment
		c.Sentiment = &s
	}
	if j.Keywords != nil {
		c.Keywords = make([]string, len(j.Keywords))
		copy(c.Keywords, j.Keywords)
	}
	if j.ErrorMessage != nil {
		m := *j.ErrorMessage
		c.ErrorMessage = &m
	}
	return &c
}
