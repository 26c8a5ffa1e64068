package models

type UserRole string

const (
	UserRoleEmployer UserRole = "employer"
	UserRoleWorker   UserRole = "worker"
	UserRoleAdmin    UserRole = "admin"
)

type UserStatus string

const (
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type JobStatus string

const (
	JobStatusOpen      JobStatus = "open"
	JobStatusAssigned  JobStatus = "assigned"
	JobStatusCompleted JobStatus = "completed"
	JobStatusExpired   JobStatus = "expired"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)
