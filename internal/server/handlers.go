package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/shouni/character-sheet-kit/pkg/attachment"
	"github.com/shouni/character-sheet-kit/pkg/domain"
	"github.com/shouni/character-sheet-kit/pkg/generator"
	"github.com/shouni/character-sheet-kit/pkg/session"
)

var errBadRequest = errors.New("bad request")

// generateRequest は JSON で送られる生成リクエストです。
// 参照画像は image_url（http/https のみ）で指定します。
type generateRequest struct {
	domain.CharacterDescription
	ImageURL string `json:"image_url,omitempty"`
}

type generateResponse struct {
	Status   domain.GenerationStatus `json:"status"`
	ImageURL string                  `json:"image_url"`
	Prompt   string                  `json:"prompt"`
}

type statusResponse struct {
	session.State
	HasImage bool `json:"has_image"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	desc, err := s.decodeDescription(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, string(domain.StatusError), err.Error())
		return
	}
	if err := desc.Validate(); err != nil {
		respondError(w, statusFor(err), string(domain.StatusError), err.Error())
		return
	}

	// レート制限のトークンは受け付け可能なリクエストだけが消費する
	if snap := s.sess.Snapshot(); !snap.Status.CanSubmit() {
		respondError(w, http.StatusConflict, string(domain.StatusError), session.ErrBusy.Error())
		return
	}
	if s.limiter != nil && !s.limiter.Allow() {
		respondError(w, http.StatusTooManyRequests, string(domain.StatusError), "too many generation requests")
		return
	}

	// クライアントが切断しても生成は最後まで実行する
	ctx := context.WithoutCancel(r.Context())
	res, err := s.sess.Submit(ctx, desc)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(ctx, "キャラクターシートの生成に失敗しました", "error", err)
		}
		respondError(w, status, string(domain.StatusError), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, generateResponse{
		Status:   domain.StatusSuccess,
		ImageURL: res.DataURI,
		Prompt:   res.Prompt,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.sess.Snapshot()
	respondJSON(w, http.StatusOK, statusResponse{State: snap, HasImage: snap.Result != nil})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	snap := s.sess.Snapshot()
	if snap.Result == nil {
		respondError(w, http.StatusNotFound, string(snap.Status), "no generated image")
		return
	}

	w.Header().Set("Content-Type", domain.ResultMIMEType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": snap.Result.SuggestedFileName(snap.UpdatedAt)}))
	w.Header().Set("Content-Length", strconv.Itoa(len(snap.Result.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(snap.Result.Data); err != nil {
		slog.WarnContext(r.Context(), "画像の送信に失敗しました", "error", err)
	}
}

// decodeDescription は multipart フォームまたは JSON から入力を取り出します。
func (s *Server) decodeDescription(w http.ResponseWriter, r *http.Request) (domain.CharacterDescription, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data", "application/x-www-form-urlencoded":
		return s.decodeForm(w, r)
	default:
		return s.decodeJSON(r)
	}
}

func (s *Server) decodeForm(w http.ResponseWriter, r *http.Request) (domain.CharacterDescription, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
			return domain.CharacterDescription{}, fmt.Errorf("%w: %w", errBadRequest, err)
		}
	} else if err := r.ParseForm(); err != nil {
		return domain.CharacterDescription{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	desc := domain.CharacterDescription{
		Name:        r.FormValue("name"),
		Archetype:   r.FormValue("archetype"),
		Appearance:  r.FormValue("appearance"),
		Clothing:    r.FormValue("clothing"),
		Accessories: r.FormValue("accessories"),
		Expressions: r.FormValue("expressions"),
		SecretItem:  r.FormValue("secretItem"),
	}

	if r.MultipartForm == nil {
		return desc, nil
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return desc, nil
	}
	if err != nil {
		return desc, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return desc, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	desc.Image = &domain.ImageSource{
		Name:     header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Content:  data,
	}
	return desc, nil
}

func (s *Server) decodeJSON(r *http.Request) (domain.CharacterDescription, error) {
	var req generateRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, s.maxUploadBytes))
	if err := dec.Decode(&req); err != nil {
		return domain.CharacterDescription{}, fmt.Errorf("%w: invalid JSON body: %w", errBadRequest, err)
	}

	desc := req.CharacterDescription
	if req.ImageURL != "" {
		// ローカルパスや gs:// はサーバー側のリソースになるため受け付けない
		if !strings.HasPrefix(req.ImageURL, "http://") && !strings.HasPrefix(req.ImageURL, "https://") {
			return desc, fmt.Errorf("%w: image_url must be an http(s) URL", errBadRequest)
		}
		desc.Image = &domain.ImageSource{Location: req.ImageURL}
	}
	return desc, nil
}

// statusFor はエラーの種類を HTTP ステータスコードに対応付けます。
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAppearanceOrImageRequired),
		errors.Is(err, attachment.ErrReadAttachment):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, generator.ErrMissingCredential):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
