package dto

type AttendanceResponse struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Remarks  string `json:"remarks,omitempty"`
}

type AttendancePageResponse struct {
	Today   *AttendanceResponse  `json:"today"`
	History []AttendanceResponse `json:"history"`
}
