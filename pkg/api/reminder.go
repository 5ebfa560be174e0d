package api

type Reminder struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Amount     string `json:"amount"`
	SenderName string `json:"senderName"`
}

type PreviewReminderRequest struct {
	GroupId  string `json:"groupId"`
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
}

type PreviewReminderResponse struct {
	Reminder *Reminder `json:"reminder"`
}

type SendReminderRequest struct {
	GroupId  string `json:"groupId"`
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
}

type SendReminderResponse struct {
	Reminder *Reminder `json:"reminder"`
}
