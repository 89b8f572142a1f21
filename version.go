// SPDX-License-Identifier: MIT

package lvmesh

// Version is the lvmesh release.
const Version = "0.1.0"
