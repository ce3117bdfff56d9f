package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
)

const submitAnswerPath = "/api/quiz/submit-answer"

// SubmitAnswer uploads one answered question together with its captured
// frames as a single multipart request. The upload is atomic from the
// client's point of view and is bounded by the submit timeout.
func (c *Client) SubmitAnswer(ctx context.Context, s entities.Submission) error {
	body, contentType, err := encodeSubmission(s)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        submitAnswerPath,
		body:        body,
		contentType: contentType,
		timeout:     c.submitTimeout,
	}, nil)
}

func encodeSubmission(s entities.Submission) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"quiz_id", strconv.Itoa(s.QuizID)},
		{"user_id", s.UserID},
		{"question_id", strconv.Itoa(s.QuestionID)},
		{"selected_answer", s.SelectedAnswer},
		{"topic", s.Topic},
		{"is_correct", strconv.FormatBool(s.IsCorrect)},
		{"time_taken", strconv.Itoa(s.TimeTaken)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	for i, frame := range s.Images.Frames {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="images"; filename="frame_%d.jpg"`, i))
		h.Set("Content-Type", "image/jpeg")

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(frame); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
