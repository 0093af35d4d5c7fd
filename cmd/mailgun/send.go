package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	mailgun "github.com/courierkit/mailgun-go"
)

var sendFlags struct {
	from     string
	to       []string
	cc       []string
	bcc      []string
	subject  string
	text     string
	html     string
	attach   []string
	tags     []string
	testMode bool
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send an email through the configured domain",
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendFlags.from, "from", "", "sender address")
	sendCmd.Flags().StringSliceVar(&sendFlags.to, "to", nil, "recipient address (repeatable)")
	sendCmd.Flags().StringSliceVar(&sendFlags.cc, "cc", nil, "cc address (repeatable)")
	sendCmd.Flags().StringSliceVar(&sendFlags.bcc, "bcc", nil, "bcc address (repeatable)")
	sendCmd.Flags().StringVar(&sendFlags.subject, "subject", "", "message subject")
	sendCmd.Flags().StringVar(&sendFlags.text, "text", "", "plain-text body")
	sendCmd.Flags().StringVar(&sendFlags.html, "html", "", "HTML body")
	sendCmd.Flags().StringSliceVar(&sendFlags.attach, "attach", nil, "file to attach (repeatable)")
	sendCmd.Flags().StringSliceVar(&sendFlags.tags, "tag", nil, "message tag (repeatable)")
	sendCmd.Flags().BoolVar(&sendFlags.testMode, "test", false, "accept without delivering")
}

func runSend(cmd *cobra.Command, args []string) error {
	client, log, err := getClient()
	if err != nil {
		return err
	}

	msg := &mailgun.Message{
		From:    sendFlags.from,
		To:      sendFlags.to,
		Cc:      sendFlags.cc,
		Bcc:     sendFlags.bcc,
		Subject: sendFlags.subject,
		Text:    sendFlags.text,
		HTML:    sendFlags.html,
		Options: mailgun.SendOptions{
			Tags:     sendFlags.tags,
			TestMode: sendFlags.testMode,
		},
	}
	for _, path := range sendFlags.attach {
		msg.Attachments = append(msg.Attachments, mailgun.Attachment{Path: path})
	}

	// Reference id ties the provider's webhook events back to this
	// invocation
	refID := uuid.NewString()
	msg.Variables = map[string]string{"cli-ref": refID}

	start := time.Now()
	resp, err := client.Messages().Send(cmd.Context(), msg)
	log.APICall("messages.send", time.Since(start), err)
	if err != nil {
		return err
	}

	log.Info().
		Str("message_id", resp.ID).
		Str("cli_ref", refID).
		Msg("message accepted")
	return nil
}
