package models

// Branch identifies one of the fixed shop locations. Each branch keeps
// its own inventory and order queue.
type Branch string

const (
	BranchKLCC         Branch = "KLCC"
	BranchTRX          Branch = "TRX"
	BranchSeriIskandar Branch = "Seri Iskandar"
)

// AllBranches returns every branch in display order.
func AllBranches() []Branch {
	return []Branch{BranchKLCC, BranchTRX, BranchSeriIskandar}
}

// ParseBranch maps a request string onto the closed branch set.
func ParseBranch(s string) (Branch, bool) {
	for _, b := range AllBranches() {
		if string(b) == s {
			return b, true
		}
	}
	return "", false
}
