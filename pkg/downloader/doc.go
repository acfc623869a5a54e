/*
Copyright The wolauncher Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package downloader keeps a local copy of remote artifacts in the launcher's
downloads directory.

A file is re-fetched only when the server reports a different size or
modification time than the copy on disk. Bodies are streamed to a temporary
sibling and renamed into place, so an interrupted transfer never replaces a
good copy.
*/
package downloader
