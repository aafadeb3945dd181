/*
Package util collects small, general-purpose helpers that keep showing up across projects: property access, CSV parsing, file handling, text formatting, reflection shortcuts, logging setup, and translation bundles.
The package naming in this module should map intuitively to each concern.

The heart of the module is the async package, which provides the deferred-result and event-notification primitives that the rest of the collection leans on for reporting asynchronous outcomes.
Everything else is a thin layer over stock libraries that I didn't want to write again.
*/
package util
