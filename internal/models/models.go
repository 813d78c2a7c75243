package models

import "time"

const (
	AnonymousAuthor = "anonymous"
	SelfAuthor      = "me"
	JustNow         = "just now"
)

type (
	Page     string
	Tab      string
	Category string
	Sender   string
)

const (
	PageHome         Page = "home"
	PageSchoolSelect Page = "school-select"
	PageChatbot      Page = "chatbot"
	PageCommunity    Page = "community"
	PagePostDetail   Page = "post-detail"
	PageWritePost    Page = "write-post"
	PageLogin        Page = "login"
	PageSignup       Page = "signup"
	PageProfile      Page = "profile"
	PageEditProfile  Page = "edit-profile"
	PageChangeSchool Page = "change-school"
	PageHelp         Page = "help"
	PagePrivacy      Page = "privacy"
)

const (
	TabHome      Tab = "home"
	TabChatbot   Tab = "chatbot"
	TabCommunity Tab = "community"
	TabProfile   Tab = "profile"
)

const (
	CategoryAll      Category = "all"
	CategoryQuestion Category = "question"
	CategoryInfo     Category = "info"
	CategoryFree     Category = "free"
)

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

var pages = map[Page]struct{}{
	PageHome: {}, PageSchoolSelect: {}, PageChatbot: {}, PageCommunity: {},
	PagePostDetail: {}, PageWritePost: {}, PageLogin: {}, PageSignup: {},
	PageProfile: {}, PageEditProfile: {}, PageChangeSchool: {}, PageHelp: {},
	PagePrivacy: {},
}

func (p Page) Valid() bool {
	_, ok := pages[p]
	return ok
}

func (t Tab) Valid() bool {
	switch t {
	case TabHome, TabChatbot, TabCommunity, TabProfile:
		return true
	}
	return false
}

type (
	PostDTO struct {
		Id       int64    `json:"id"`
		Category Category `json:"category"`
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		School   string   `json:"school"`
		Author   string   `json:"author"`
		Likes    int      `json:"likes"`
		Comments int      `json:"comments"`
		TimeAgo  string   `json:"timeAgo"`
	}

	// Draft is the write-post form before submission.
	Draft struct {
		Category Category `json:"category"`
		School   string   `json:"school"`
		Title    string   `json:"title"`
		Content  string   `json:"content"`
	}

	CommentDTO struct {
		Id      int64       `json:"id"`
		Author  string      `json:"author"`
		Content string      `json:"content"`
		TimeAgo string      `json:"timeAgo"`
		Mine    bool        `json:"mine"`
		Replies []*ReplyDTO `json:"replies"`
	}

	// ReplyDTO is a reply under a comment. Mine is set for the current
	// user's own replies and only drives menu visibility.
	ReplyDTO struct {
		Id      int64  `json:"id"`
		Author  string `json:"author"`
		Content string `json:"content"`
		TimeAgo string `json:"timeAgo"`
		Mine    bool   `json:"mine"`
	}

	School struct {
		Id       int    `json:"id"`
		Name     string `json:"name"`
		Korean   string `json:"korean"`
		Location string `json:"location"`
	}

	FAQ struct {
		Id       int    `json:"id"`
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}

	Message struct {
		Id        int64     `json:"id"`
		Text      string    `json:"text"`
		Sender    Sender    `json:"sender"`
		Timestamp time.Time `json:"timestamp" fake:"{date}"`
	}

	ScreenState struct {
		CurrentPage    Page   `json:"currentPage"`
		ActiveTab      Tab    `json:"activeTab"`
		SelectedSchool string `json:"selectedSchool"`
		SelectedPostId int64  `json:"selectedPostId"`
	}

	Profile struct {
		Email        string `json:"email"`
		Name         string `json:"name"`
		AvatarLetter string `json:"avatarLetter"`
		School       string `json:"school"`
		LoggedIn     bool   `json:"loggedIn"`
	}
)
