// Package components renders the portfolio sections. Elements that take
// part in live behavior carry stable ids so that client commands and
// reported geometry can address them.
package components

import "strconv"

// Section ids, in document order.
var Sections = []string{"home", "about", "skills", "projects", "achievements", "contact"}

// Element ids.
const (
	AboutContentID       = "about-content"
	ContactFormWrapperID = "contact-form-wrapper"
	ProfileImageID       = "profile-img"
	StatusSlot           = "status"
	ProjectCountSlot     = "project-count"
)

// ObserveAttr marks elements whose geometry the client reports.
const ObserveAttr = "data-observe"

// HighlightID returns the id of the i-th about highlight.
func HighlightID(i int) string { return "highlight-" + strconv.Itoa(i) }

// SkillCategoryID returns the id of the i-th skill category.
func SkillCategoryID(i int) string { return "skill-category-" + strconv.Itoa(i) }

// SkillBarID returns the id of skill j in category i.
func SkillBarID(i, j int) string { return "skill-" + strconv.Itoa(i) + "-" + strconv.Itoa(j) }

// ProjectCardID returns the id of the card for project id.
func ProjectCardID(id string) string { return "project-" + id }

// AchievementID returns the id of the i-th achievement card.
func AchievementID(i int) string { return "achievement-" + strconv.Itoa(i) }

// ContactItemID returns the id of the i-th contact detail.
func ContactItemID(i int) string { return "contact-item-" + strconv.Itoa(i) }
