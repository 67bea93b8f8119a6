package param

type FunctionArg struct {
	Path string `arg:"positional" help:"path to the function directory" default:"."`
}

type MessageOpt struct {
	Message string `arg:"-m,--message,env:ECHO_MESSAGE" help:"message the function answers with"`
}

type PortOpt struct {
	Port string `arg:"-p,--port,env:AWS_LWA_PORT" help:"port to listen on"`
}

type Invoke struct {
	MessageOpt
}

type Serve struct {
	MessageOpt
	PortOpt
}

type Config struct {
	FunctionArg
}

type Build struct {
	FunctionArg
}

type Run struct {
	MessageOpt
	Port string `arg:"-p,--port" help:"host port for the runtime interface emulator" default:"9000"`
	FunctionArg
}

type Publish struct {
	Login            bool `arg:"-l,--ecr-login" help:"login to ECR before pushing"`
	EnsureRepository bool `arg:"-e,--ensure-repository,env:ECHO_ENSURE_REPOSITORY" help:"create the ECR repository when missing"`
	FunctionArg
}

type Deploy struct {
	Tag    string `arg:"-t,--tag,env:ECHO_BRANCH" help:"branch or sha of the release to deploy, defaults to the current branch"`
	Verify bool   `arg:"--verify" help:"wait until the function url answers with the message"`
	MessageOpt
	FunctionArg
}

type Destroy struct {
	Branch string `arg:"-b,--branch,env:ECHO_BRANCH" help:"branch of the deployment to destroy, defaults to the current branch"`
	FunctionArg
}

type Curl struct {
	Branch string `arg:"-b,--branch,env:ECHO_BRANCH" help:"branch of the deployment to request, defaults to the current branch"`
	FunctionArg
}
