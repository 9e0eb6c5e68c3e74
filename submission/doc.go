// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submission turns a draft into a stored post.

# Validation

Validate runs before anything remote:

  - no image: ErrMissingImage ("missing image")
  - no caption and no voice note: ErrMissingContent ("missing caption or voice note")

# Stages

Workflow.Submit runs these stages in order and stops at the first failure:

 1. resolve the signed-in customer (ErrNotAuthenticated when absent)
 2. upload the image to post-media at <customer>/<unix millis>.<ext>
 3. upload the voice note, if any, to voice-notes at <customer>/<unix millis>.webm
 4. insert the posts row with status "processing"

Failures in stages 2-4 come back as *RemoteOperationError carrying the store's
own message. There is no rollback: an image uploaded before a failed insert
stays in its bucket and is logged at WARN. Retrying uploads a new copy.
*/
package submission
