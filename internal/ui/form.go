package ui

import (
	"context"
	"errors"
	"net/url"
	"time"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"snowglobe/internal/client"
	"snowglobe/internal/logging"
	"snowglobe/internal/state"
)

var errTooLong = errors.New("too long")

func maxRunes(n int) fyne.StringValidator {
	return func(s string) error {
		if utf8.RuneCountInString(s) > n {
			return errTooLong
		}
		return nil
	}
}

// submit asks for the engraving and sends the design to the server.
func (e *Editor) submit() {
	if _, ready := e.Card(""); !ready {
		e.Status.SetText("Draw a tree first")
		return
	}

	carved := widget.NewEntry()
	carved.Validator = maxRunes(state.MaxCarvedText)
	sender := widget.NewEntry()
	sender.Validator = maxRunes(state.MaxName)
	recipient := widget.NewEntry()
	recipient.Validator = maxRunes(state.MaxName)
	message := widget.NewMultiLineEntry()
	message.Validator = maxRunes(state.MaxMessage)

	items := []*widget.FormItem{
		widget.NewFormItem("Carved text", carved),
		widget.NewFormItem("From", sender),
		widget.NewFormItem("To", recipient),
		widget.NewFormItem("Message", message),
	}
	dialog.ShowForm("Send your snow globe", "Send", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		e.engraving = state.Engraving{
			CarvedText:    carved.Text,
			SenderName:    sender.Text,
			RecipientName: recipient.Text,
			MessageText:   message.Text,
		}
		pts, ornaments := e.Design.Snapshot()
		e.Status.SetText("Sending...")
		go e.send(client.Payload{Points: pts, Ornaments: ornaments, Engraving: e.engraving})
	}, e.window)
}

func (e *Editor) send(p client.Payload) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	sub, link, err := e.client.Submit(ctx, p)
	if err != nil {
		logging.Logger().Error("ui: submit", "error", err)
		fyne.Do(func() {
			e.Status.SetText("Sending failed")
			dialog.ShowError(err, e.window)
		})
		return
	}
	logging.Logger().Info("ui: submitted", "shortid", sub.ShortID, "link", link)
	fyne.Do(func() {
		e.Status.SetText("Shared as " + sub.ShortID)
		e.showShared(sub.ShortID, link)
	})
}

// showShared offers the share link and a way to email it.
func (e *Editor) showShared(shortID, link string) {
	var linkObj fyne.CanvasObject = widget.NewLabel(link)
	if u, err := url.Parse(link); err == nil {
		linkObj = widget.NewHyperlink(link, u)
	}
	copyBtn := widget.NewButton("Copy link", func() {
		e.window.Clipboard().SetContent(link)
		e.Status.SetText("Link copied")
	})

	email := widget.NewEntry()
	email.SetPlaceHolder("recipient@example.com")
	sendBtn := widget.NewButton("Email it", nil)
	sendBtn.OnTapped = func() {
		addr := email.Text
		sendBtn.Disable()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			err := e.client.SendEmail(ctx, shortID, addr)
			fyne.Do(func() {
				sendBtn.Enable()
				if err != nil {
					dialog.ShowError(err, e.window)
					return
				}
				e.Status.SetText("Sent to " + addr)
			})
		}()
	}

	content := container.NewVBox(
		widget.NewLabel("Your snow globe is ready:"),
		container.NewHBox(linkObj, copyBtn),
		widget.NewSeparator(),
		container.NewBorder(nil, nil, nil, sendBtn, email),
	)
	dialog.NewCustom("Shared", "Close", content, e.window).Show()
}
