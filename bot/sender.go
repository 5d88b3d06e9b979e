package bot

// Button is one inline keyboard button.
type Button struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// Reply is one outbound message, abstracted from the messaging transport.
type Reply struct {
	Text      string     `json:"text"`
	PhotoPath string     `json:"photo_path,omitempty"`
	Buttons   [][]Button `json:"buttons,omitempty"`
	Menu      [][]string `json:"menu,omitempty"` // persistent reply keyboard
}

// Sender delivers replies to a chat. The gateway implementation lives in
// the transport package; tests use an in-memory recorder.
type Sender interface {
	Send(chatID int64, reply Reply) error
}
