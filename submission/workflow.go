// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"context"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/easy-posting/auth"
	"github.com/danielhkuo/easy-posting/datastore"
	"github.com/danielhkuo/easy-posting/models"
)

// Operation names carried by RemoteOperationError
const (
	OpUploadImage = "upload_image"
	OpUploadVoice = "upload_voice_note"
	OpInsertPost  = "insert_post"
)

// SuccessMessage is shown once a post is stored
const SuccessMessage = "Post submitted successfully! It will be published shortly."

type IdentityResolver interface {
	CurrentUser(ctx context.Context) (auth.Identity, bool)
}

type ObjectStore interface {
	Upload(ctx context.Context, bucket, objectPath string, blob models.Blob) error
}

type RecordStore interface {
	Insert(ctx context.Context, table string, row datastore.Row) error
}

// Draft is what the user is about to post
type Draft struct {
	Image   *models.Blob
	Caption string
	Audio   *models.Blob
}

// Result describes the stored post
type Result struct {
	PostID     string
	CustomerID string
	ImagePath  string
	VoicePath  *string
}

type Workflow struct {
	identity IdentityResolver
	objects  ObjectStore
	records  RecordStore

	now   func() time.Time
	newID func() string
}

func NewWorkflow(identity IdentityResolver, objects ObjectStore, records RecordStore) *Workflow {
	return &Workflow{
		identity: identity,
		objects:  objects,
		records:  records,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Validate checks the draft without touching anything remote
func Validate(d Draft) error {
	if d.Image == nil {
		return ErrMissingImage
	}
	if d.Caption == "" && d.Audio == nil {
		return ErrMissingContent
	}
	return nil
}

// run holds what earlier stages produced for later ones
type run struct {
	draft     Draft
	startedAt time.Time // one clock reading shared by every stage
	identity  auth.Identity
	result   Result
	uploaded []string // bucket/path of every stored object
}

type stage struct {
	name string
	do   func(ctx context.Context, r *run) error
}

// Submit validates d, then resolves the identity, uploads the image, uploads
// the voice note if any, and inserts the posts row, in that order. The first
// failing stage ends the run. Objects uploaded before the failure stay in
// their buckets.
func (w *Workflow) Submit(ctx context.Context, d Draft) (*Result, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}

	r := &run{draft: d, startedAt: w.now().UTC()}
	stages := []stage{
		{"resolve_identity", w.resolveIdentity},
		{OpUploadImage, w.uploadImage},
		{OpUploadVoice, w.uploadVoiceNote},
		{OpInsertPost, w.insertPost},
	}

	for _, s := range stages {
		if err := s.do(ctx, r); err != nil {
			if len(r.uploaded) > 0 {
				slog.Warn("submission aborted after upload, objects left without a post",
					"stage", s.name,
					"customer_id", r.identity.CustomerID,
					"objects", r.uploaded,
					"error", err,
				)
			}
			return nil, err
		}
	}

	slog.Info("post submitted",
		"post_id", r.result.PostID,
		"customer_id", r.result.CustomerID,
		"image_size", humanize.Bytes(uint64(d.Image.Size())),
		"has_voice_note", r.result.VoicePath != nil,
	)
	return &r.result, nil
}

func (w *Workflow) resolveIdentity(ctx context.Context, r *run) error {
	id, ok := w.identity.CurrentUser(ctx)
	if !ok {
		return ErrNotAuthenticated
	}
	r.identity = id
	r.result.CustomerID = id.CustomerID
	return nil
}

func (w *Workflow) uploadImage(ctx context.Context, r *run) error {
	objectPath := r.identity.CustomerID + "/" + r.stamp() + "." + Extension(r.draft.Image.Filename)

	if err := w.objects.Upload(ctx, models.BucketPostMedia, objectPath, *r.draft.Image); err != nil {
		return &RemoteOperationError{Op: OpUploadImage, Err: err}
	}
	r.uploaded = append(r.uploaded, models.BucketPostMedia+"/"+objectPath)
	r.result.ImagePath = objectPath
	return nil
}

func (w *Workflow) uploadVoiceNote(ctx context.Context, r *run) error {
	if r.draft.Audio == nil {
		return nil
	}
	objectPath := r.identity.CustomerID + "/" + r.stamp() + ".webm"

	if err := w.objects.Upload(ctx, models.BucketVoiceNotes, objectPath, *r.draft.Audio); err != nil {
		return &RemoteOperationError{Op: OpUploadVoice, Err: err}
	}
	r.uploaded = append(r.uploaded, models.BucketVoiceNotes+"/"+objectPath)
	r.result.VoicePath = &objectPath
	return nil
}

func (w *Workflow) insertPost(ctx context.Context, r *run) error {
	postID := w.newID()

	row := datastore.Row{
		"id":          postID,
		"customer_id": r.identity.CustomerID,
		"image_path":  r.result.ImagePath,
		"voice_path":  nil,
		"user_prompt": nil,
		"status":      models.StatusProcessing,
		"created_at":  r.startedAt,
	}
	if r.result.VoicePath != nil {
		row["voice_path"] = *r.result.VoicePath
	}
	if r.draft.Caption != "" {
		row["user_prompt"] = r.draft.Caption
	}

	if err := w.records.Insert(ctx, models.TablePosts, row); err != nil {
		return &RemoteOperationError{Op: OpInsertPost, Err: err}
	}
	r.result.PostID = postID
	return nil
}

// stamp names the run's objects, in milliseconds since the epoch
func (r *run) stamp() string {
	return strconv.FormatInt(r.startedAt.UnixMilli(), 10)
}

// Extension returns the text after the last dot of a filename, or the whole
// base name when there is no dot. Empty results become "bin".
func Extension(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := base
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		ext = base[i+1:]
	}
	if ext == "" || ext == "/" {
		return "bin"
	}
	return ext
}
