/*
Package notesdk provides the wire types shared by the notes service and a
client SDK for talking to it.

# Overview

SDKClient covers the unauthenticated auth endpoints. Logging in returns a
Session, which carries the access/refresh pair and rotates it automatically
when the access token is about to expire:

	client := notesdk.NewSDKClient("http://localhost:8080")

	if _, err := client.Register(ctx, "a@x.com", "pw1"); err != nil {
		return err
	}

	session, err := client.Login(ctx, "a@x.com", "pw1")
	if err != nil {
		return err
	}

	note, err := session.CreateNote(ctx, notesdk.NoteInput{Title: "hello", Body: "world"})

	// Revoke the refresh token when done.
	_ = session.Revoke(ctx)

# Errors

Every non-2xx response is returned as *APIError carrying the HTTP status, the
error kind ("Unauthorized", "Validation Error", ...) and the server message.
The same type is used server side to write those responses.
*/
package notesdk
