package main

import "github.com/killallgit/clipset/cmd"

// @title           clipset API
// @version         1.0.0
// @description     Records labeled clip requests for YouTube videos and builds FLAC audio datasets from them
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/clipset
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /
// @schemes         http
func main() {
	cmd.Execute()
}
