package mail

type AppointmentEmailData struct {
	Nome    string
	Data    string
	Horario string
}

type EmailSender struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	TemplateDir string
	dialer      dialer
}
