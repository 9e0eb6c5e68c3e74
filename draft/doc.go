// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package draft holds posts that are still being put together.

State is a plain value. Its With/Without methods return an updated copy, so
the same input always gives the same output and nothing is shared between
callers:

	st := draft.Empty().WithImage(img).WithCaption("Spring offer")

Session wraps a State with a mutex and the voice note Recorder. Sessions
maps draft ids to sessions; a session is only visible to the customer that
created it.

Submit marks the session as submitting, rejects a second concurrent Submit
with ErrSubmitting, and on success resets the session to Empty with the
success message. On failure the draft is left as it was and the error text
becomes the status message.
*/
package draft
