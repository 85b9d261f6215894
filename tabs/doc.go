// Package tabs holds the three persistent surfaces of the app: the post
// feed, locally saved drafts, and the profile page. Tabs re-register their
// click targets in Activate because switching tabs releases the outgoing
// tab's binding scope.
package tabs
