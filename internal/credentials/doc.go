// Package credentials resolves API tokens from declarative sources such as
// `env:TRAVIS_API_TOKEN` or `file:~/.config/kbcheck/token`.
package credentials
