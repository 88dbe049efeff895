// Package swipe implements the swipe-to-act gesture engine of a feed row: it
// resolves which action each drag direction is bound to, tracks the drag
// offset of a gesture, drives the two directional overlay panels and decides
// when an action fires.
package swipe

import "fmt"

// Kind is a concrete action that can be performed on a post.
type Kind uint8

// Available action kinds.
const (
	Upvote Kind = iota
	Downvote
	Unvote
	Save
	Unsave
	Hide
	Unhide
	Comments
	Link
	External
	Report
	Share
	UserProfile
	Properties
)

var kindNames = [...]string{
	Upvote:      "upvote",
	Downvote:    "downvote",
	Unvote:      "unvote",
	Save:        "save",
	Unsave:      "unsave",
	Hide:        "hide",
	Unhide:      "unhide",
	Comments:    "comments",
	Link:        "link",
	External:    "external",
	Report:      "report",
	Share:       "share",
	UserProfile: "user_profile",
	Properties:  "properties",
}

// Short labels shown on the overlay panels while swiping.
var kindLabels = [...]string{
	Upvote:      "Upvote",
	Downvote:    "Downvote",
	Unvote:      "Remove Vote",
	Save:        "Save",
	Unsave:      "Unsave",
	Hide:        "Hide",
	Unhide:      "Unhide",
	Comments:    "Comments",
	Link:        "Link",
	External:    "Browser",
	Report:      "Report",
	Share:       "Share",
	UserProfile: "User Profile",
	Properties:  "Properties",
}

// Longer labels used by the context action menu.
var kindMenuLabels = [...]string{
	Upvote:      "Upvote",
	Downvote:    "Downvote",
	Unvote:      "Remove vote",
	Save:        "Save",
	Unsave:      "Unsave",
	Hide:        "Hide",
	Unhide:      "Unhide",
	Comments:    "View comments",
	Link:        "Open link",
	External:    "Open in browser",
	Report:      "Report",
	Share:       "Share",
	UserProfile: "User profile",
	Properties:  "Properties",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Label returns the short, human readable label of the action.
func (k Kind) Label() string {
	if int(k) < len(kindLabels) {
		return kindLabels[k]
	}
	return k.String()
}

// MenuLabel returns the label of the action as shown in the context menu.
func (k Kind) MenuLabel() string {
	if int(k) < len(kindMenuLabels) {
		return kindMenuLabels[k]
	}
	return k.String()
}

// IsToggle reports whether the action changes the post's account flags
// through the mutation API.
func (k Kind) IsToggle() bool {
	switch k {
	case Upvote, Downvote, Unvote, Save, Unsave, Hide, Unhide:
		return true
	}
	return false
}

// Resolved is an action bound to a drag direction for the duration of one
// gesture, together with the label shown for it.
type Resolved struct {
	Kind  Kind
	Label string
}

func resolved(k Kind) Resolved {
	return Resolved{Kind: k, Label: k.Label()}
}
