package dto

type UpdateProfileRequest struct {
	FirstName   string `form:"first_name" json:"first_name"`
	LastName    string `form:"last_name" json:"last_name"`
	Phone       string `form:"phone" json:"phone"`
	Address     string `form:"address" json:"address"`
	City        string `form:"city" json:"city"`
	State       string `form:"state" json:"state"`
	Department  string `form:"department" json:"department"`
	Designation string `form:"designation" json:"designation"`
	JoinDate    string `form:"join_date" json:"join_date"` // YYYY-MM-DD, optional
}

type ProfileResponse struct {
	EmployeeCode string `json:"employee_id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
	JoinDate     string `json:"join_date,omitempty"`
	PicturePath  string `json:"picture_path,omitempty"`
}

type EmployeeListItem struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
}

type DashboardResponse struct {
	// Employee view
	TodayAttendance *AttendanceResponse `json:"today_attendance,omitempty"`
	MyPendingLeaves int64               `json:"my_pending_leaves,omitempty"`
	CurrentNetPay   string              `json:"current_net_pay,omitempty"`

	// HR/Admin view
	TotalEmployees int64 `json:"total_employees,omitempty"`
	PresentToday   int64 `json:"present_today,omitempty"`
	PendingLeaves  int64 `json:"pending_leaves,omitempty"`
}
