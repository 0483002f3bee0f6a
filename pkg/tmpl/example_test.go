package tmpl_test

import (
	"fmt"

	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/tmpl"
)

func ExampleExpand() {
	environ := []string{"KWSUB_DB=/srv/hosts.yaml"}

	text := `render:
  database: '{{env "KWSUB_DB"}}'
  label: '{{env "KWSUB_LABEL" "report"}}'
  text: '@@name@@ {{.SUFFIX | default "up"}}'`

	out, err := tmpl.Expand("kwsub.yaml", text, environ)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)

	// Output:
	// render:
	//   database: '/srv/hosts.yaml'
	//   label: 'report'
	//   text: '@@name@@ up'
}
