package clipboard

import "errors"

var errClipboardUnsupported = errors.New("no clipboard utility available on this system")
