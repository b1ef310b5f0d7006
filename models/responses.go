package models

// LoginResponse is the payload returned to the caller after a successful
// login. Token carries the compact JWS string; Username and Email echo the
// authenticated account's public identity so the front end does not need a
// second round trip.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// VisitorStatistics is the payload of the statistics endpoint.
type VisitorStatistics struct {
	// TotalVisitors is the number of successful logins since process start.
	TotalVisitors int64 `json:"totalVisitors"`

	// ActiveUsers is the number of accounts with activity recorded within
	// the inactivity threshold.
	ActiveUsers int `json:"activeUsers"`
}

// EmailVerificationResponse reports whether the supplied username/email pair
// matches the stored account.
type EmailVerificationResponse struct {
	Valid bool `json:"valid"`
}
