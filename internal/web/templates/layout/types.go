package layout

import "github.com/mfranke/numguess/internal/model"

// FlashMessage is a one-shot message carried across a redirect
type FlashMessage struct {
	Type    string // info, error, hint or success
	Message string
}

// PageData is the data every page needs for the shared layout
type PageData struct {
	Title string
	User  *model.User
	Flash *FlashMessage
}
