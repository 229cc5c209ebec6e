package model

// ErrorPage describes the content of a full-screen error view.
type ErrorPage struct {
	Code              int
	Title             string
	Message           string
	Description       string
	ShowHomeButton    bool
	ShowContactButton bool
	ShowRetryButton   bool
}

// ErrorPages holds the built-in error views keyed by status code.
var ErrorPages = map[int]ErrorPage{
	401: {
		Code:        401,
		Title:       "Unauthorized",
		Message:     "You need to be logged in to access this page.",
		Description: "Please sign in to your account to continue. If you don't have an account, you can create one for free.",
	},
	403: {
		Code:              403,
		Title:             "Access Denied",
		Message:           "You don't have permission to access this page.",
		Description:       "This page is restricted. Please check your permissions or contact your administrator if you believe this is an error.",
		ShowHomeButton:    true,
		ShowContactButton: true,
	},
	404: {
		Code:              404,
		Title:             "Page Not Found",
		Message:           "Oops! The page you're looking for doesn't exist.",
		Description:       "The page you are trying to access might have been moved, deleted, or never existed. Please check the URL and try again.",
		ShowHomeButton:    true,
		ShowContactButton: true,
	},
	500: {
		Code:              500,
		Title:             "Server Error",
		Message:           "Something went wrong on our end.",
		Description:       "We're experiencing some technical difficulties. Please try again in a few moments. If the problem persists, contact our support team.",
		ShowHomeButton:    true,
		ShowContactButton: true,
		ShowRetryButton:   true,
	},
	503: {
		Code:            503,
		Title:           "Service Unavailable",
		Message:         "We're down for maintenance.",
		Description:     "We're currently performing scheduled maintenance. We'll be back online shortly. Thank you for your patience.",
		ShowHomeButton:  true,
		ShowRetryButton: true,
	},
}

// ErrorPageFor returns the page for code, falling back to 404.
func ErrorPageFor(code int) ErrorPage {
	if p, ok := ErrorPages[code]; ok {
		return p
	}
	return ErrorPages[404]
}
