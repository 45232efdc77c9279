// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	UnsupportedRuntimeId Id = iota + 1
	InterpreterNotFoundId
	EnvironmentCreateFailedId
	ActivationFailedId
	DependencyInstallFailedId
	ManifestNotFoundId
	CredentialsWriteFailedId
	CredentialsMissingId
	ConfigLoadFailedId
	CacheUnreachableId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue Markdown with the given glamour style
// ("dark", "light", "notty", or a path to a style file).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	unsupportedRuntimeIssue = &Issue{
		id: UnsupportedRuntimeId,
		mdMsg: `
# Your Python interpreter is too old!

The provisioner refuses to continue because the interpreter reported a
version below the required minimum. Nothing was created or installed.

## Things you can try:
- Check which interpreter is picked up:
~~~
$ python3 --version
~~~
- Install a newer Python (3.7 or higher) with your package manager or pyenv
- Point the provisioner at a specific interpreter:
~~~
$ PYPROV_PYTHON_INTERPRETER=python3.11 pyprov
~~~`,
		extLinks: []HttpLink{"https://www.python.org/downloads/"},
	}

	interpreterNotFoundIssue = &Issue{
		id: InterpreterNotFoundId,
		mdMsg: `
# Python interpreter not found!

The configured interpreter could not be executed, so its version could
not be checked.

## Things you can try:
- Make sure Python 3 is installed and on your PATH
- Set ` + "`python.interpreter`" + ` in pyprov.cue to the full path of the interpreter`,
	}

	environmentCreateFailedIssue = &Issue{
		id: EnvironmentCreateFailedId,
		mdMsg: `
# Failed to create the virtual environment!

` + "`python3 -m venv`" + ` exited with an error. A partially created environment
directory may have been left behind.

## Things you can try:
- On Debian/Ubuntu the venv module is packaged separately:
~~~
$ sudo apt install python3-venv
~~~
- Remove the partial directory and run the provisioner again
- Check that the working directory is writable`,
		extLinks: []HttpLink{"https://docs.python.org/3/library/venv.html"},
	}

	activationFailedIssue = &Issue{
		id: ActivationFailedId,
		mdMsg: `
# Could not activate the virtual environment!

The environment directory exists but its activation script could not be
evaluated or its interpreter is missing.

## Things you can try:
- Delete the environment directory and let the provisioner recreate it
- Make sure the environment was created by the same Python you are using now`,
	}

	dependencyInstallFailedIssue = &Issue{
		id: DependencyInstallFailedId,
		mdMsg: `
# Dependency installation failed!

pip exited with an error. Installation is not retried and packages that were
already installed are left in place.

## Things you can try:
- Scroll up: pip prints the package that failed to build or resolve
- Check your network connection and any proxy settings
- Re-run the provisioner; already installed packages are reused`,
		extLinks: []HttpLink{"https://pip.pypa.io/en/stable/user_guide/#requirements-files"},
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# Dependency manifest not found!

The provisioner installs packages from a requirements file in the working
directory, but none was found.

## Things you can try:
- Run the provisioner from the project root
- Set ` + "`install.manifest`" + ` in pyprov.cue to the right file`,
	}

	credentialsWriteFailedIssue = &Issue{
		id: CredentialsWriteFailedId,
		mdMsg: `
# Could not write the credentials file!

The placeholder credentials file could not be created.

## Things you can try:
- Check that the working directory is writable
- Create the file by hand; the provisioner never overwrites an existing one`,
	}

	credentialsMissingIssue = &Issue{
		id: CredentialsMissingId,
		mdMsg: `
# Required API key is missing!

The query tool needs ` + "`ANTHROPIC_API_KEY`" + `. The OpenAI and Gemini keys are
optional; without them the primary model is used as a fallback.

## Things you can try:
- Edit the credentials file and uncomment the key:
~~~
ANTHROPIC_API_KEY=your_key_here
~~~
- Or export it in your shell before running the tool`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or did not match the schema.

## Things you can try:
- Show the effective configuration:
~~~
$ pyprov config show
~~~
- Write a fresh default file:
~~~
$ pyprov config init
~~~`,
	}

	cacheUnreachableIssue = &Issue{
		id: CacheUnreachableId,
		mdMsg: `
# Response cache is not reachable

The query tool caches model responses in Redis. It works without the cache,
but repeated queries will be slower and cost more.

## Things you can try:
- Start a local Redis:
~~~
$ docker run -d -p 6379:6379 redis:7
~~~
- Set ` + "`doctor.redis_url`" + ` if your Redis runs elsewhere`,
	}

	issues = map[Id]*Issue{
		unsupportedRuntimeIssue.Id():      unsupportedRuntimeIssue,
		interpreterNotFoundIssue.Id():     interpreterNotFoundIssue,
		environmentCreateFailedIssue.Id(): environmentCreateFailedIssue,
		activationFailedIssue.Id():        activationFailedIssue,
		dependencyInstallFailedIssue.Id(): dependencyInstallFailedIssue,
		manifestNotFoundIssue.Id():        manifestNotFoundIssue,
		credentialsWriteFailedIssue.Id():  credentialsWriteFailedIssue,
		credentialsMissingIssue.Id():      credentialsMissingIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		cacheUnreachableIssue.Id():        cacheUnreachableIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
