package mail

import (
	"fmt"
	"strings"

	imap "github.com/BrianLeishman/go-imap"
)

const snippetLimit = 500

// InboundEmail é um e-mail não lido normalizado para o processador.
type InboundEmail struct {
	UID     int
	From    string
	Name    string
	Subject string
	Snippet string
}

// Inbox consulta a caixa de entrada por IMAP.
type Inbox struct {
	im *imap.Dialer
}

func NewInbox(user, password, host string, port int) (*Inbox, error) {
	im, err := imap.New(user, password, host, port)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no IMAP: %w", err)
	}

	if err := im.SelectFolder("INBOX"); err != nil {
		return nil, fmt.Errorf("falha ao selecionar INBOX: %w", err)
	}

	return &Inbox{im: im}, nil
}

// FetchUnread devolve os e-mails ainda não lidos, sem marcá-los.
func (i *Inbox) FetchUnread() ([]InboundEmail, error) {
	uids, err := i.im.GetUIDs("UNSEEN")
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar UIDs: %w", err)
	}
	if len(uids) == 0 {
		return nil, nil
	}

	emails, err := i.im.GetEmails(uids...)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar e-mails: %w", err)
	}

	var out []InboundEmail
	for uid, e := range emails {
		msg := InboundEmail{
			UID:     uid,
			Subject: e.Subject,
			Snippet: snippet(e.Text),
		}
		for addr, name := range e.From {
			msg.From = addr
			msg.Name = name
			break
		}
		out = append(out, msg)
	}

	return out, nil
}

func (i *Inbox) MarkRead(uid int) error {
	return i.im.MarkSeen(uid)
}

func (i *Inbox) Close() error {
	return i.im.Close()
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > snippetLimit {
		return text[:snippetLimit]
	}
	return text
}
