package email

const (
	subjectProspectConfirmation = "Thank you for your submission"
	subjectReviewerAlert        = "New lead submitted"
)
