package domain

type Tab string

const (
	TabHome          Tab = "home"
	TabBookmarks     Tab = "bookmarks"
	TabProfile       Tab = "profile"
	TabNotifications Tab = "notifications"
	TabDefi          Tab = "defi"
	TabSwap          Tab = "swap"
	TabSettings      Tab = "settings"
	TabWallet        Tab = "wallet"
	TabMarket        Tab = "market"
	TabInbox         Tab = "inbox"
)

// View is one frame of the navigation stack.
type View struct {
	Tab            Tab
	ViewingProfile *Profile
	FocusedPost    *Post
}
