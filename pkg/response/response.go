package response

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success", "partial" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Page wraps one page of a listing
type Page struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Paged returns a success response carrying a Page
func Paged(statusCode int, items interface{}, total int64, page, limit int) Response {
	return Success(statusCode, Page{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Partial reports an operation that was applied only in part; data says which part
func Partial(statusCode int, data interface{}, err string) Response {
	return Response{
		Status:     "partial",
		StatusCode: statusCode,
		Data:       data,
		Error:      err,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}
