package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/adanyl0v/taskflow/internal/models"
)

var layout = template.Must(template.New("layout").Parse(`<html>
<body style="margin:0;padding:0;background-color:#f8fafc;font-family:sans-serif;">
<table width="100%" border="0" cellspacing="0" cellpadding="0">
<tr><td align="center" style="padding:20px 0;">
<table width="600" border="0" cellspacing="0" cellpadding="0" style="background-color:#ffffff;border-radius:12px;overflow:hidden;">
<tr><td style="background-color:#6366f1;padding:20px;text-align:center;">
<h1 style="color:#ffffff;margin:0;font-size:24px;">TaskFlow</h1>
</td></tr>
<tr><td style="padding:40px;">
<h2 style="color:#1e293b;margin-top:0;">{{.Heading}}</h2>
{{if .Body}}<p style="color:#475569;font-size:16px;line-height:1.6;">{{.Body}}</p>{{end}}
<hr style="border:0;border-top:1px solid #e2e8f0;margin:20px 0;">
<p style="color:#64748b;font-size:14px;">This is an automated notification, please do not reply.</p>
{{if .Link}}<a href="{{.Link}}" style="display:inline-block;background-color:#6366f1;color:#ffffff;padding:10px 20px;border-radius:6px;text-decoration:none;font-weight:600;">Open TaskFlow</a>{{end}}
</td></tr>
<tr><td style="background-color:#f1f5f9;padding:20px;text-align:center;color:#64748b;font-size:12px;">
&copy; {{.Year}} TaskFlow
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>
`))

var subjects = map[models.NotificationType]string{
	models.NotificationTaskAssigned:   "New task assigned",
	models.NotificationTaskUpdated:    "Task updated",
	models.NotificationTaskCompleted:  "Task completed",
	models.NotificationProjectUpdated: "Project updated",
	models.NotificationCommentAdded:   "New comment",
}

// Subject is the email subject of a notification.
func Subject(n *models.Notification) string {
	if prefix, ok := subjects[n.Type]; ok {
		return fmt.Sprintf("TaskFlow: %s", prefix)
	}
	return fmt.Sprintf("TaskFlow notification: %s", n.Title)
}

// NotificationMessage renders the email announcing n to the address to.
// appURL, when set, is linked from the message.
func NotificationMessage(to string, n *models.Notification, appURL string) (Message, error) {
	data := struct {
		Heading string
		Body    string
		Link    string
		Year    int
	}{
		Heading: n.Title,
		Link:    appURL,
		Year:    time.Now().Year(),
	}
	if n.Message != nil {
		data.Body = *n.Message
	}

	var buf bytes.Buffer
	if err := layout.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render notification email: %w", err)
	}
	return Message{
		To:      to,
		Subject: Subject(n),
		HTML:    buf.String(),
	}, nil
}
