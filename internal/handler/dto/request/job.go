package request

// JobRequest carries the optional batch size of a scheduler run.
type JobRequest struct {
	Limit int `json:"limit" form:"limit" binding:"omitempty,min=1,max=1000"`
}
