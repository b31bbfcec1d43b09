package labelstore

import _ "modernc.org/sqlite"

const driverName = "sqlite"
