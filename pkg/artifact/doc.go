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
Package artifact holds the types shared by every stage of dependency
acquisition: the resolved download descriptor and the error taxonomy.

Errors returned by the catalog, resolver, downloader and installer packages
wrap one of the sentinel errors declared here, so callers can branch with
errors.Is regardless of how much context was added on the way up.
*/
package artifact
