// Package service provides the domain service clients for shurlty-cli.
//
// AuthService wraps the login and registration endpoints and reduces every
// failure to one displayable message. LinkService wraps link creation and
// listing and leaves error interpretation to the caller.
package service
