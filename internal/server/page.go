package server

import (
	"html/template"
	"net/http"

	"snowglobe/internal/logging"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .RecipientName}}A snow globe for {{.RecipientName}}{{else}}A snow globe{{end}}</title>
<style>
body { font-family: sans-serif; background: #0d1b2a; color: #e0e1dd; text-align: center; }
.plate { display: inline-block; background: #8d6e63; color: #fff; padding: .3em 1.2em; border-radius: 4px; font-weight: bold; }
p.msg { white-space: pre-wrap; max-width: 32em; margin: 1em auto; }
a { color: #90caf9; }
</style>
</head>
<body>
<h1>{{if .RecipientName}}For {{.RecipientName}}{{else}}A snow globe{{end}}</h1>
<img src="/api/submission/{{.ShortID}}/preview.png?size=384" alt="tree" width="384" height="384">
{{with .CarvedText}}<div class="plate">{{.}}</div>{{end}}
{{with .MessageText}}<p class="msg">{{.}}</p>{{end}}
{{with .SenderName}}<p>from {{.}}</p>{{end}}
<p><a href="/api/submission/{{.ShortID}}/card.pdf">Printable card</a> &middot; <a href="{{.Viewer}}">Open in the desktop viewer</a></p>
</body>
</html>
`))

type pageData struct {
	ShortID       string
	CarvedText    string
	SenderName    string
	RecipientName string
	MessageText   string
	Viewer        template.URL
}

// handlePage serves the human-facing share page of a submission.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.lookup(w, r)
	if !ok {
		return
	}
	data := pageData{
		ShortID:       sub.ShortID,
		CarvedText:    sub.CarvedText,
		SenderName:    sub.SenderName,
		RecipientName: sub.RecipientName,
		MessageText:   sub.MessageText,
		Viewer:        template.URL(ViewerLink(r.Host, sub.ShortID)),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		logging.Logger().Warn("server: render page", "shortid", sub.ShortID, "error", err)
	}
}
