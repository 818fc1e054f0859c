package dto

type SubmitLeaveRequest struct {
	LeaveType string `form:"leave_type" json:"leave_type"`
	StartDate string `form:"start_date" json:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date" json:"end_date"`     // YYYY-MM-DD
	Reason    string `form:"reason" json:"reason"`
}

type DecideLeaveRequest struct {
	Action   string `form:"action" json:"action" binding:"required,oneof=approve reject"`
	Comments string `form:"admin_comments" json:"admin_comments"`
}

type LeaveResponse struct {
	ID            string `json:"id"`
	EmployeeCode  string `json:"employee_id,omitempty"`
	LeaveType     string `json:"leave_type"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalDays     int    `json:"total_days"`
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
	AdminComments string `json:"admin_comments,omitempty"`
	AppliedAt     string `json:"applied_at"`
	DecidedAt     string `json:"decided_at,omitempty"`
}
